package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringer struct{ s string }

func (s stringer) String() string { return s.s }

func TestSuggestionLabels(t *testing.T) {
	tests := []struct {
		name     string
		in       Suggestion
		display  string
		announce string
	}{
		{name: "plain", in: Plain("Alice"), display: "Alice", announce: "Alice"},
		{name: "item with label", in: Item("a1", "Alice"), display: "Alice", announce: "Alice"},
		{name: "item without label", in: Item("a1", nil), display: "a1", announce: "a1"},
		{name: "item with empty label", in: Item("a1", ""), display: "a1", announce: "a1"},
		{name: "stringer label", in: Item("a1", stringer{"Alice"}), display: "Alice", announce: "a1"},
		{name: "numeric value", in: Item(42, nil), display: "42", announce: "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.display, tt.in.DisplayLabel())
			assert.Equal(t, tt.announce, tt.in.AnnounceLabel())
		})
	}
}

func TestFromAny(t *testing.T) {
	assert.Equal(t, Plain("x"), FromAny("x"))
	assert.Equal(t, Item("a1", "Alice"), FromAny(map[string]any{"value": "a1", "label": "Alice"}))
	assert.Equal(t, Item("a1", nil), FromAny(map[any]any{"value": "a1"}))
	assert.Equal(t, Plain("7"), FromAny(7))
	assert.Equal(t, Plain(""), FromAny(nil))
	// A map without "value" is not a structured suggestion.
	assert.False(t, FromAny(map[string]any{"label": "x"}).IsStructured())

	s := Item("v", "l")
	assert.Equal(t, s, FromAny(s))
	assert.Equal(t, s, FromAny(&s))
}

func TestSuggestionMap(t *testing.T) {
	assert.Equal(t, map[string]any{"value": "a"}, Plain("a").Map())
	assert.Equal(t, map[string]any{"value": "a1", "label": "Alice"}, Item("a1", "Alice").Map())
}

func TestSelectedIndexMatchesLooseNumbers(t *testing.T) {
	list := []Suggestion{Item(int64(1), "one"), Item(2.0, "two")}
	assert.Equal(t, 0, selectedIndex(list, 1))
	assert.Equal(t, 1, selectedIndex(list, 2))
	assert.Equal(t, -1, selectedIndex(list, "3"))
	assert.Equal(t, -1, selectedIndex(list, nil))
}
