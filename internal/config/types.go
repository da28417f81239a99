// Package config defines the suggest configuration file, its embedded
// defaults, and how a user file is merged over them.
package config

import (
	"fmt"
	"time"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// Match modes for live filtering by typed text.
const (
	MatchPrefix   = "prefix"
	MatchContains = "contains"
	MatchNone     = "none"
)

// File is the on-disk configuration.
type File struct {
	App App `yaml:"app"`
	UI  UI  `yaml:"ui"`
}

// App holds metadata shown by the version and config commands.
type App struct {
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Debug       Debug  `yaml:"debug,omitempty"`
}

// Debug controls the debug event buffer.
type Debug struct {
	MaxEvents *int `yaml:"max_events,omitempty"`
}

// UI groups everything the interactive form reads.
type UI struct {
	Theme    ThemeSelect          `yaml:"theme"`
	Behavior Behavior             `yaml:"behavior"`
	Drop     suggest.Align        `yaml:"drop,omitempty"`
	Messages suggest.Messages     `yaml:"messages,omitempty"`
	Keys     suggest.KeyOverrides `yaml:"keys,omitempty"`
	Themes   map[string]Theme     `yaml:"themes,omitempty"`
}

// ThemeSelect names the active theme.
type ThemeSelect struct {
	Default string `yaml:"default"`
}

// Behavior tunes the input. Pointer fields distinguish unset from zero.
type Behavior struct {
	Debounce    string `yaml:"debounce,omitempty"`
	MaxHeight   *int   `yaml:"max_height,omitempty"`
	Step        *int   `yaml:"step,omitempty"`
	Width       *int   `yaml:"width,omitempty"`
	Match       string `yaml:"match,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Plain       *bool  `yaml:"plain,omitempty"`
	History     *int   `yaml:"history,omitempty"`
}

// Theme is a named palette. Colors are ANSI indexes or hex strings.
type Theme struct {
	Border      string `yaml:"border,omitempty"`
	BorderFocus string `yaml:"border_focus,omitempty"`
	Text        string `yaml:"text,omitempty"`
	Muted       string `yaml:"muted,omitempty"`
	ActiveFG    string `yaml:"active_fg,omitempty"`
	ActiveBG    string `yaml:"active_bg,omitempty"`
	PanelBG     string `yaml:"panel_bg,omitempty"`
	Status      string `yaml:"status,omitempty"`
	Error       string `yaml:"error,omitempty"`
	HelpKey     string `yaml:"help_key,omitempty"`
	HelpValue   string `yaml:"help_value,omitempty"`
}

// DebounceDuration parses Behavior.Debounce. Empty means the widget default.
func (b Behavior) DebounceDuration() (time.Duration, error) {
	if b.Debounce == "" {
		return suggest.DefaultDebounce, nil
	}
	d, err := time.ParseDuration(b.Debounce)
	if err != nil {
		return 0, fmt.Errorf("ui.behavior.debounce: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("ui.behavior.debounce must not be negative, got %s", d)
	}
	return d, nil
}

// IntOr returns *p, or def when p is nil.
func IntOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// BoolOr returns *p, or def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ActiveTheme returns the theme named by UI.Theme.Default.
func (f File) ActiveTheme() (Theme, bool) {
	t, ok := f.UI.Themes[f.UI.Theme.Default]
	return t, ok
}

// Validate reports the first invalid setting.
func (f File) Validate() error {
	if f.UI.Theme.Default == "" {
		return fmt.Errorf("ui.theme.default is required")
	}
	if _, ok := f.UI.Themes[f.UI.Theme.Default]; !ok {
		return fmt.Errorf("ui.theme.default: unknown theme %q", f.UI.Theme.Default)
	}
	if _, err := f.UI.Behavior.DebounceDuration(); err != nil {
		return err
	}
	switch f.UI.Behavior.Match {
	case "", MatchPrefix, MatchContains, MatchNone:
	default:
		return fmt.Errorf("ui.behavior.match must be one of %s, %s, %s; got %q", MatchPrefix, MatchContains, MatchNone, f.UI.Behavior.Match)
	}
	for name, p := range map[string]*int{
		"max_height": f.UI.Behavior.MaxHeight,
		"step":       f.UI.Behavior.Step,
		"width":      f.UI.Behavior.Width,
	} {
		if p != nil && *p <= 0 {
			return fmt.Errorf("ui.behavior.%s must be positive, got %d", name, *p)
		}
	}
	if p := f.UI.Behavior.History; p != nil && *p < 0 {
		return fmt.Errorf("ui.behavior.history must not be negative, got %d", *p)
	}
	if err := f.UI.Messages.Validate(); err != nil {
		return fmt.Errorf("ui.%w", err)
	}
	for _, edge := range []struct{ field, value string }{
		{"top", f.UI.Drop.Top}, {"bottom", f.UI.Drop.Bottom},
		{"left", f.UI.Drop.Left}, {"right", f.UI.Drop.Right},
	} {
		if err := validEdge(edge.field, edge.value); err != nil {
			return err
		}
	}
	return nil
}

func validEdge(field, value string) error {
	switch field {
	case "top", "bottom":
		if value == "" || value == suggest.EdgeTop || value == suggest.EdgeBottom {
			return nil
		}
	default:
		if value == "" || value == suggest.EdgeLeft || value == suggest.EdgeRight {
			return nil
		}
	}
	return fmt.Errorf("ui.drop.%s: invalid edge %q", field, value)
}
