package ui

import (
	"strings"

	"github.com/oakwood-commons/suggest/internal/config"
	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// FieldSpec describes one input of the form.
type FieldSpec struct {
	ID          string
	Label       string
	Placeholder string
	Value       string
	// Catalogue is the full list; the input shows the entries matching the
	// typed text.
	Catalogue []suggest.Suggestion
	Match     string
}

// Field is an input plus the catalogue it filters.
type Field struct {
	spec     FieldSpec
	input    *suggest.Model
	selected *suggest.Suggestion
}

func newField(spec FieldSpec, props suggest.Props, opts ...suggest.Option) *Field {
	f := &Field{spec: spec}
	props.ID = spec.ID
	props.Placeholder = spec.Placeholder
	props.DefaultValue = spec.Value
	props.Suggestions = MatchSuggestions(spec.Catalogue, spec.Value, spec.Match)
	props.OnInput = f.onInput
	props.OnSelect = f.onSelect
	f.input = suggest.New(props, opts...)
	return f
}

// Input exposes the underlying input.
func (f *Field) Input() *suggest.Model {
	return f.input
}

// ID returns the field id.
func (f *Field) ID() string {
	return f.spec.ID
}

// Selected returns the last picked suggestion, or nil.
func (f *Field) Selected() *suggest.Suggestion {
	return f.selected
}

func (f *Field) onInput(ev *suggest.Event) {
	f.input.SetSuggestions(MatchSuggestions(f.spec.Catalogue, ev.Value, f.spec.Match))
	if f.selected != nil && f.selected.DisplayLabel() != ev.Value {
		f.selected = nil
	}
}

func (f *Field) onSelect(ev suggest.SelectEvent) {
	s := ev.Suggestion
	f.selected = &s
	f.input.SetSuggestions(MatchSuggestions(f.spec.Catalogue, s.DisplayLabel(), f.spec.Match))
}

// MatchSuggestions returns the entries of all whose label matches text
// case-insensitively. Empty text and MatchNone keep everything.
func MatchSuggestions(all []suggest.Suggestion, text, mode string) []suggest.Suggestion {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" || mode == config.MatchNone {
		return all
	}
	out := make([]suggest.Suggestion, 0, len(all))
	for _, s := range all {
		label := strings.ToLower(s.DisplayLabel())
		var ok bool
		if mode == config.MatchContains {
			ok = strings.Contains(label, needle)
		} else {
			ok = strings.HasPrefix(label, needle)
		}
		if ok {
			out = append(out, s)
		}
	}
	return out
}
