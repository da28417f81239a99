package suggest

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// EventType names the pass-through hooks.
type EventType string

const (
	// EventFocus is sent to OnFocus when the field gains focus.
	EventFocus EventType = "focus"
	// EventBlur is sent to OnBlur when the field loses focus.
	EventBlur EventType = "blur"
	// EventInput is sent to OnInput when a key changed the text.
	EventInput EventType = "input"
	// EventKeyDown is sent to OnKeyDown for every key press while focused.
	EventKeyDown EventType = "keydown"
)

// Event is handed to OnFocus, OnBlur, OnInput and OnKeyDown after the input
// has done its own handling.
type Event struct {
	Type  EventType
	ID    string
	Value string
	// Key is set for EventKeyDown and for input caused by a key press.
	Key tea.KeyPressMsg

	defaultPrevented bool
}

// PreventDefault suppresses the default action of the key (for Enter, the
// submission).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether the input or a hook suppressed the default.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// SelectEvent is passed to OnSelect when a suggestion is picked.
type SelectEvent struct {
	// Target is the underlying text field. Hooks may change its value.
	Target     *textinput.Model
	ID         string
	Suggestion Suggestion
}

// SubmitMsg is emitted when Enter was not consumed by a suggestion pick.
type SubmitMsg struct {
	ID    string
	Value string
}

// SelectedMsg is emitted alongside OnSelect so parent models can react in
// their own Update.
type SelectedMsg struct {
	ID         string
	Suggestion Suggestion
}
