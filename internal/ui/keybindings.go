package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// formKeys are handled by the form before the focused input sees a key.
type formKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultFormKeys(tab key.Binding) formKeys {
	next := key.NewBinding(key.WithKeys(tab.Keys()...), key.WithHelp(tab.Help().Key, "next field"))
	return formKeys{
		NextField: next,
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// helpKeys merges the input bindings with the form bindings for the footer.
type helpKeys struct {
	input suggest.KeyMap
	form  formKeys
}

// ShortHelp implements help.KeyMap.
func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.input.ShortHelp(), h.form.NextField, h.form.Help, h.form.Quit)
}

// FullHelp implements help.KeyMap.
func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.input.FullHelp(), []key.Binding{h.form.NextField, h.form.PrevField, h.form.Help, h.form.Quit})
}
