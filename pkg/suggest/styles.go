package suggest

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Styles controls how the input and its panel are drawn.
type Styles struct {
	Input        lipgloss.Style // bordered frame around the field
	InputFocused lipgloss.Style // frame while focused
	Plain        lipgloss.Style // frame when Props.Plain is set
	Placeholder  lipgloss.Style // hint text while the field is empty
	Panel        lipgloss.Style // border around the suggestion list
	Item         lipgloss.Style
	Active       lipgloss.Style // keyboard-highlighted or selected row
	More         lipgloss.Style // "more below" indicator
}

// Palette is the minimal set of colors a theme supplies.
type Palette struct {
	Border      color.Color
	BorderFocus color.Color
	Text        color.Color
	Muted       color.Color
	ActiveFG    color.Color
	ActiveBG    color.Color
	PanelBG     color.Color
}

// DefaultPalette mirrors the dark theme.
func DefaultPalette() Palette {
	return Palette{
		Border:      lipgloss.Color("238"),
		BorderFocus: lipgloss.Color("81"),
		Text:        lipgloss.Color("250"),
		Muted:       lipgloss.Color("244"),
		ActiveFG:    lipgloss.Color("250"),
		ActiveBG:    lipgloss.Color("24"),
		PanelBG:     lipgloss.Color("236"),
	}
}

// DefaultStyles builds styles from DefaultPalette.
func DefaultStyles() Styles {
	return NewStyles(DefaultPalette())
}

// NewStyles builds styles from a palette.
func NewStyles(p Palette) Styles {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.Text).
		Padding(0, 1)
	return Styles{
		Input:        frame,
		InputFocused: frame.BorderForeground(p.BorderFocus),
		Plain:        lipgloss.NewStyle().Foreground(p.Text),
		Placeholder:  lipgloss.NewStyle().Foreground(p.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.BorderFocus).
			Background(p.PanelBG),
		Item: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.PanelBG).
			Padding(0, 1),
		Active: lipgloss.NewStyle().
			Foreground(p.ActiveFG).
			Background(p.ActiveBG).
			Padding(0, 1),
		More: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.PanelBG).
			Padding(0, 1),
	}
}

// NoColorStyles keeps the layout of DefaultStyles without any color; the
// active row is shown with a marker instead.
func NoColorStyles() Styles {
	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	return Styles{
		Input:        frame,
		InputFocused: frame,
		Plain:        lipgloss.NewStyle(),
		Placeholder:  lipgloss.NewStyle(),
		Panel:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
		Item:         lipgloss.NewStyle().Padding(0, 1),
		Active:       lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		More:         lipgloss.NewStyle().Padding(0, 1),
	}
}
