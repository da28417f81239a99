package suggest

import (
	"time"

	"github.com/go-logr/logr"
)

// Props is the caller-owned configuration of an input. Update it with
// Model.SetProps; the input reconciles its own state against the change.
type Props struct {
	// ID is reported on events and messages so a parent can tell inputs apart.
	ID string
	// Value, when non-nil, is the current value: a string or a Suggestion.
	// A change of Value replaces the text in the field.
	Value any
	// DefaultValue seeds the field when Value is nil.
	DefaultValue any
	Placeholder  string
	// Plain drops the border around the field.
	Plain       bool
	Suggestions []Suggestion

	OnSelect  func(SelectEvent)
	OnFocus   func(*Event)
	OnBlur    func(*Event)
	OnInput   func(*Event)
	OnKeyDown func(*Event)

	// DropAlign positions the panel relative to DropTarget, or to the field
	// when DropTarget is nil.
	DropAlign  Align
	DropTarget *Rect
	// Messages overrides announcement strings; empty fields use the defaults.
	Messages Messages
}

// Option configures collaborators of a Model at construction time.
type Option func(*Model)

// WithAnnouncer sets where announcements go. The default discards them.
func WithAnnouncer(a Announcer) Option {
	return func(m *Model) {
		if a != nil {
			m.announcer = a
		}
	}
}

// WithLogger sets the logger used for state transitions.
func WithLogger(lgr logr.Logger) Option {
	return func(m *Model) {
		m.log = lgr
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(km KeyMap) Option {
	return func(m *Model) {
		m.keys = km
	}
}

// WithStyles replaces the default styles.
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithDebounce sets the delay between focus or input and the panel update.
// Zero defers to the next message instead of waiting.
func WithDebounce(d time.Duration) Option {
	return func(m *Model) {
		m.reset.delay = d
	}
}

// WithMaxHeight sets how many suggestion rows are visible at once.
func WithMaxHeight(rows int) Option {
	return func(m *Model) {
		m.maxHeight = rows
	}
}

// WithStep sets how many suggestions are materialised per page.
func WithStep(n int) Option {
	return func(m *Model) {
		m.step = n
	}
}

// WithWidth sets the total width of the field, frame included.
func WithWidth(w int) Option {
	return func(m *Model) {
		m.width = w
	}
}
