package suggest

import "charm.land/bubbles/v2/key"

// KeyMap binds the keys the input handles before the text field sees them.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Close  key.Binding
	Tab    key.Binding
}

// DefaultKeyMap returns the arrow/enter/escape/tab bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next suggestion"),
		),
		Prev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous suggestion"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}

// KeyOverrides replaces the keys of individual bindings. Empty lists keep the
// current keys.
type KeyOverrides struct {
	Next   []string `yaml:"next,omitempty"`
	Prev   []string `yaml:"previous,omitempty"`
	Select []string `yaml:"select,omitempty"`
	Close  []string `yaml:"close,omitempty"`
	Tab    []string `yaml:"tab,omitempty"`
}

// Apply returns a copy of km with the overrides applied.
func (o KeyOverrides) Apply(km KeyMap) KeyMap {
	set := func(b *key.Binding, keys []string) {
		if len(keys) > 0 {
			b.SetKeys(keys...)
		}
	}
	set(&km.Next, o.Next)
	set(&km.Prev, o.Prev)
	set(&km.Select, o.Select)
	set(&km.Close, o.Close)
	set(&km.Tab, o.Tab)
	return km
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Next, km.Prev, km.Select, km.Close}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Next, km.Prev},
		{km.Select, km.Close, km.Tab},
	}
}
