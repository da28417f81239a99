package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/suggest/internal/config"
	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// Theme defines the colors of the form. Empty config fields fall back to the
// dark palette.
type Theme struct {
	Border      color.Color // field frame
	BorderFocus color.Color // focused field frame and panel border
	Text        color.Color
	Muted       color.Color // placeholders, labels, "more" indicator
	ActiveFG    color.Color // highlighted suggestion
	ActiveBG    color.Color
	PanelBG     color.Color
	Status      color.Color // live region
	Error       color.Color
	HelpKey     color.Color
	HelpValue   color.Color
}

// fallbackTheme is used when the configured theme is missing a color.
func fallbackTheme() Theme {
	return Theme{
		Border:      lipgloss.Color("238"),
		BorderFocus: lipgloss.Color("81"),
		Text:        lipgloss.Color("250"),
		Muted:       lipgloss.Color("244"),
		ActiveFG:    lipgloss.Color("250"),
		ActiveBG:    lipgloss.Color("24"),
		PanelBG:     lipgloss.Color("236"),
		Status:      lipgloss.Color("81"),
		Error:       lipgloss.Color("203"),
		HelpKey:     lipgloss.Color("81"),
		HelpValue:   lipgloss.Color("245"),
	}
}

// ThemeFromConfig converts a configured theme, filling gaps from base.
func ThemeFromConfig(tc config.Theme, base Theme) Theme {
	pick := func(dst *color.Color, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	t := base
	pick(&t.Border, tc.Border)
	pick(&t.BorderFocus, tc.BorderFocus)
	pick(&t.Text, tc.Text)
	pick(&t.Muted, tc.Muted)
	pick(&t.ActiveFG, tc.ActiveFG)
	pick(&t.ActiveBG, tc.ActiveBG)
	pick(&t.PanelBG, tc.PanelBG)
	pick(&t.Status, tc.Status)
	pick(&t.Error, tc.Error)
	pick(&t.HelpKey, tc.HelpKey)
	pick(&t.HelpValue, tc.HelpValue)
	return t
}

// ThemeNamed returns the named theme from cfg, or the configured default
// when name is empty.
func ThemeNamed(cfg config.File, name string) (Theme, bool) {
	if name == "" {
		name = cfg.UI.Theme.Default
	}
	tc, ok := cfg.UI.Themes[name]
	if !ok {
		return fallbackTheme(), false
	}
	return ThemeFromConfig(tc, fallbackTheme()), true
}

// Palette is the subset of the theme the input draws with.
func (t Theme) Palette() suggest.Palette {
	return suggest.Palette{
		Border:      t.Border,
		BorderFocus: t.BorderFocus,
		Text:        t.Text,
		Muted:       t.Muted,
		ActiveFG:    t.ActiveFG,
		ActiveBG:    t.ActiveBG,
		PanelBG:     t.PanelBG,
	}
}

// InputStyles returns the input styles for the theme.
func (t Theme) InputStyles(noColor bool) suggest.Styles {
	if noColor {
		return suggest.NoColorStyles()
	}
	return suggest.NewStyles(t.Palette())
}

// formStyles holds the host's own styles.
type formStyles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Debug  lipgloss.Style
}

func newFormStyles(t Theme, noColor bool) formStyles {
	if noColor {
		return formStyles{
			Title:  lipgloss.NewStyle().Bold(true),
			Label:  lipgloss.NewStyle(),
			Status: lipgloss.NewStyle(),
			Error:  lipgloss.NewStyle(),
			Debug:  lipgloss.NewStyle(),
		}
	}
	return formStyles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.BorderFocus),
		Label:  lipgloss.NewStyle().Foreground(t.Muted),
		Status: lipgloss.NewStyle().Foreground(t.Status),
		Error:  lipgloss.NewStyle().Foreground(t.Error),
		Debug:  lipgloss.NewStyle().Foreground(t.Muted),
	}
}
