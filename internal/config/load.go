package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/suggest/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	defaultOnce sync.Once
	defaultFile File
	defaultErr  error
)

// DefaultYAML returns a copy of the embedded default configuration.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded configuration once. Callers receive a deep
// copy and may modify it.
func Default() (File, error) {
	defaultOnce.Do(func() {
		defaultFile, defaultErr = Parse(embeddedDefaultConfig)
		if defaultErr != nil {
			defaultErr = fmt.Errorf("decode embedded default config: %w", defaultErr)
			return
		}
		if err := defaultFile.Validate(); err != nil {
			defaultErr = fmt.Errorf("embedded default config: %w", err)
		}
	})
	if defaultErr != nil {
		return File{}, defaultErr
	}
	return defaultFile.clone(), nil
}

// Parse decodes a configuration document. Unknown keys are rejected so typos
// surface instead of being ignored.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	return f, nil
}

// Load returns the defaults with the file at path merged on top. An empty
// path returns the defaults.
func Load(path string) (File, error) {
	cfg, err := Default()
	if err != nil {
		return File{}, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	user, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg = Merge(cfg, user)
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolvePath returns explicit when set, otherwise the user config under
// $XDG_CONFIG_HOME (or ~/.config) if it exists, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// Merge overlays the set fields of override onto base. Themes merge per
// field, so a user theme may change a single color of a built-in one.
func Merge(base, override File) File {
	out := base.clone()

	if override.App.Name != "" {
		out.App.Name = override.App.Name
	}
	if override.App.Description != "" {
		out.App.Description = override.App.Description
	}
	if override.App.Debug.MaxEvents != nil {
		out.App.Debug.MaxEvents = override.App.Debug.MaxEvents
	}

	if override.UI.Theme.Default != "" {
		out.UI.Theme.Default = override.UI.Theme.Default
	}
	out.UI.Behavior = mergeBehavior(out.UI.Behavior, override.UI.Behavior)
	if !override.UI.Drop.IsZero() {
		out.UI.Drop = override.UI.Drop
	}
	out.UI.Messages = mergeMessages(out.UI.Messages, override.UI.Messages)
	out.UI.Keys = mergeKeys(out.UI.Keys, override.UI.Keys)

	if out.UI.Themes == nil {
		out.UI.Themes = map[string]Theme{}
	}
	for name, t := range override.UI.Themes {
		out.UI.Themes[name] = mergeTheme(out.UI.Themes[name], t)
	}
	return out
}

// ThemeNames lists the configured themes in order.
func (f File) ThemeNames() []string {
	names := make([]string, 0, len(f.UI.Themes))
	for name := range f.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Marshal renders the configuration as YAML.
func (f File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f File) clone() File {
	out := f
	if f.UI.Themes != nil {
		out.UI.Themes = make(map[string]Theme, len(f.UI.Themes))
		for k, v := range f.UI.Themes {
			out.UI.Themes[k] = v
		}
	}
	out.UI.Keys = suggestKeysClone(f.UI.Keys)
	return out
}

func mergeBehavior(base, o Behavior) Behavior {
	if o.Debounce != "" {
		base.Debounce = o.Debounce
	}
	if o.MaxHeight != nil {
		base.MaxHeight = o.MaxHeight
	}
	if o.Step != nil {
		base.Step = o.Step
	}
	if o.Width != nil {
		base.Width = o.Width
	}
	if o.Match != "" {
		base.Match = o.Match
	}
	if o.Placeholder != "" {
		base.Placeholder = o.Placeholder
	}
	if o.Plain != nil {
		base.Plain = o.Plain
	}
	if o.History != nil {
		base.History = o.History
	}
	return base
}

func mergeTheme(base, o Theme) Theme {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Border, o.Border)
	pick(&base.BorderFocus, o.BorderFocus)
	pick(&base.Text, o.Text)
	pick(&base.Muted, o.Muted)
	pick(&base.ActiveFG, o.ActiveFG)
	pick(&base.ActiveBG, o.ActiveBG)
	pick(&base.PanelBG, o.PanelBG)
	pick(&base.Status, o.Status)
	pick(&base.Error, o.Error)
	pick(&base.HelpKey, o.HelpKey)
	pick(&base.HelpValue, o.HelpValue)
	return base
}
