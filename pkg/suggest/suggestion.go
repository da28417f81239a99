// Package suggest provides a text input with a floating list of selectable
// suggestions for Bubble Tea programs. The input keeps keyboard focus, the
// highlighted suggestion and assistive-technology announcements in sync.
package suggest

import (
	"fmt"
	"reflect"
)

// Renderer is a non-text label. It is drawn in the panel but never announced.
type Renderer interface {
	Render() string
}

// Suggestion is a candidate value offered while typing. It is either a plain
// string (see Plain) or a structured item with a value and an optional label
// (see Item).
type Suggestion struct {
	// Value is the committed value. For plain suggestions it is the string itself.
	Value any
	// Label is optional. Strings are displayed and announced; Renderer and
	// fmt.Stringer labels are displayed only.
	Label any

	structured bool
}

// Plain returns a string suggestion.
func Plain(s string) Suggestion {
	return Suggestion{Value: s}
}

// Item returns a structured suggestion. A nil or empty label falls back to
// the value wherever a label is needed.
func Item(value, label any) Suggestion {
	return Suggestion{Value: value, Label: label, structured: true}
}

// Plains converts a list of strings into suggestions.
func Plains(values ...string) []Suggestion {
	out := make([]Suggestion, 0, len(values))
	for _, v := range values {
		out = append(out, Plain(v))
	}
	return out
}

// FromAny builds a suggestion from loosely typed data such as a decoded YAML
// or JSON document. Maps with a "value" key become structured items; anything
// else is treated as a plain string.
func FromAny(v any) Suggestion {
	switch t := v.(type) {
	case Suggestion:
		return t
	case *Suggestion:
		if t == nil {
			return Plain("")
		}
		return *t
	case string:
		return Plain(t)
	case map[string]any:
		if val, ok := t["value"]; ok {
			return Item(val, t["label"])
		}
	case map[any]any:
		if val, ok := t["value"]; ok {
			return Item(val, t["label"])
		}
	case nil:
		return Plain("")
	}
	return Plain(fmt.Sprint(v))
}

// FromAnySlice converts every element with FromAny.
func FromAnySlice(values []any) []Suggestion {
	out := make([]Suggestion, 0, len(values))
	for _, v := range values {
		out = append(out, FromAny(v))
	}
	return out
}

// IsStructured reports whether the suggestion was built with Item.
func (s Suggestion) IsStructured() bool {
	return s.structured
}

// DisplayLabel is the text drawn in the panel and in the input: the label if
// present, otherwise the value.
func (s Suggestion) DisplayLabel() string {
	if s.structured && !isEmptyLabel(s.Label) {
		return labelText(s.Label)
	}
	return valueText(s.Value)
}

// AnnounceLabel is the text read to assistive technology: the label when it
// is a string, otherwise the value.
func (s Suggestion) AnnounceLabel() string {
	if s.structured {
		if l, ok := s.Label.(string); ok && l != "" {
			return l
		}
	}
	return valueText(s.Value)
}

// MatchKey is compared with the input value to find the selected suggestion.
func (s Suggestion) MatchKey() any {
	return s.Value
}

// Map returns a plain map view of the suggestion, used by expression filters
// and output encoders.
func (s Suggestion) Map() map[string]any {
	m := map[string]any{"value": s.Value}
	if s.structured && !isEmptyLabel(s.Label) {
		m["label"] = s.DisplayLabel()
	}
	return m
}

func (s Suggestion) String() string {
	return s.DisplayLabel()
}

// matches reports whether value (a string, a Suggestion or a raw value)
// refers to this suggestion.
func (s Suggestion) matches(value any) bool {
	if value == nil {
		return false
	}
	want := normalizeValue(value)
	have := s.MatchKey()
	if reflect.DeepEqual(want, have) {
		return true
	}
	// Decoded documents mix int, int64 and float64 for the same literal.
	return fmt.Sprint(want) == fmt.Sprint(have) && isScalar(want) && isScalar(have)
}

// normalizeValue reduces a widget value to the key it is matched on.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case Suggestion:
		return v.MatchKey()
	case *Suggestion:
		if v == nil {
			return nil
		}
		return v.MatchKey()
	}
	return value
}

// renderValue is the text shown in the input for a widget value.
func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case Suggestion:
		return v.DisplayLabel()
	case *Suggestion:
		if v == nil {
			return ""
		}
		return v.DisplayLabel()
	}
	return valueText(value)
}

func labelText(label any) string {
	switch l := label.(type) {
	case string:
		return l
	case Renderer:
		return l.Render()
	case fmt.Stringer:
		return l.String()
	}
	return fmt.Sprint(label)
}

func valueText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}

func isEmptyLabel(label any) bool {
	if label == nil {
		return true
	}
	if s, ok := label.(string); ok {
		return s == ""
	}
	return false
}

func isScalar(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// selectedIndex returns the index of the suggestion matching value, or -1.
func selectedIndex(suggestions []Suggestion, value any) int {
	if value == nil {
		return -1
	}
	for i, s := range suggestions {
		if s.matches(value) {
			return i
		}
	}
	return -1
}
