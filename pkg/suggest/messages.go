package suggest

import (
	"fmt"
	"regexp"
	"strings"
)

var verbPattern = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z]`)

// Messages holds the announcement strings. Each one is a format string;
// SuggestionsCount receives the number of suggestions and EnterSelect the
// announced label.
type Messages struct {
	SuggestionsCount string `yaml:"suggestions_count,omitempty" json:"suggestionsCount,omitempty"`
	SuggestionsExist string `yaml:"suggestions_exist,omitempty" json:"suggestionsExist,omitempty"`
	SuggestionIsOpen string `yaml:"suggestion_is_open,omitempty" json:"suggestionIsOpen,omitempty"`
	EnterSelect      string `yaml:"enter_select,omitempty" json:"enterSelect,omitempty"`
}

// DefaultMessages returns the built-in English announcements.
func DefaultMessages() Messages {
	return Messages{
		SuggestionsCount: "%d suggestions available",
		SuggestionsExist: "This input has suggestions use arrow keys to navigate",
		SuggestionIsOpen: "Suggestions drop is open, continue to use arrow keys to navigate",
		EnterSelect:      "%s (Press Enter to Select)",
	}
}

// WithDefaults fills empty fields from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	if m.SuggestionsCount == "" {
		m.SuggestionsCount = d.SuggestionsCount
	}
	if m.SuggestionsExist == "" {
		m.SuggestionsExist = d.SuggestionsExist
	}
	if m.SuggestionIsOpen == "" {
		m.SuggestionIsOpen = d.SuggestionIsOpen
	}
	if m.EnterSelect == "" {
		m.EnterSelect = d.EnterSelect
	}
	return m
}

// Count renders the suggestion count announcement.
func (m Messages) Count(n int) string {
	return formatMessage(m.SuggestionsCount, n)
}

// Select renders the per-item announcement.
func (m Messages) Select(label string) string {
	return formatMessage(m.EnterSelect, label)
}

// Validate reports a count or select template that cannot format its
// argument, such as "%s options" for the count.
func (m Messages) Validate() error {
	for _, c := range []struct {
		name, format string
		arg          any
	}{
		{"suggestions_count", m.SuggestionsCount, 0},
		{"enter_select", m.EnterSelect, ""},
	} {
		if hasVerb(c.format) && strings.Contains(fmt.Sprintf(c.format, c.arg), "%!") {
			return fmt.Errorf("messages.%s: %q cannot format a %T", c.name, c.format, c.arg)
		}
	}
	return nil
}

// formatMessage applies arg to format. Strings without a verb are treated as
// a suffix, so "suggestions available" becomes "3 suggestions available". A
// verb that does not fit arg prints arg as %v would.
func formatMessage(format string, arg any) string {
	if hasVerb(format) {
		if out := fmt.Sprintf(format, arg); !strings.Contains(out, "%!") {
			return out
		}
		loc := verbPattern.FindStringIndex(format)
		if loc == nil {
			return fmt.Sprint(arg) + " " + format
		}
		unescape := func(s string) string { return strings.ReplaceAll(s, "%%", "%") }
		return unescape(format[:loc[0]]) + fmt.Sprint(arg) + unescape(format[loc[1]:])
	}
	if format == "" {
		return fmt.Sprint(arg)
	}
	return fmt.Sprint(arg) + " " + format
}

func hasVerb(format string) bool {
	for i := 0; i < len(format)-1; i++ {
		if format[i] != '%' {
			continue
		}
		if format[i+1] == '%' {
			i++
			continue
		}
		return true
	}
	return false
}

// compact collapses runs of whitespace so announcements read cleanly.
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
