package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/suggest/internal/config"
)

type themeSelectionError struct {
	Selected     string
	Available    []string
	DefaultTheme string
}

func (e themeSelectionError) Error() string {
	return fmt.Sprintf("unknown theme %q\navailable themes: %v\ndefault theme: %s", e.Selected, e.Available, e.DefaultTheme)
}

// loadConfig resolves the config path (flag, then the XDG location) and
// merges it over the embedded defaults.
func loadConfig(explicit string) (config.File, error) {
	path := config.ResolvePath(explicit)
	cfg, err := config.Load(path)
	if err != nil {
		return config.File{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// selectTheme makes name the active theme. Unknown names list the choices.
func selectTheme(cfg *config.File, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if _, ok := cfg.UI.Themes[name]; !ok {
		return themeSelectionError{
			Selected:     name,
			Available:    cfg.ThemeNames(),
			DefaultTheme: cfg.UI.Theme.Default,
		}
	}
	cfg.UI.Theme.Default = name
	return nil
}

// runThemesList prints the available themes from the merged configuration.
func runThemesList(w io.Writer) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := selectTheme(&cfg, themeName); err != nil {
		return err
	}
	fmt.Fprintf(w, "Available themes (default: %s):\n", cfg.UI.Theme.Default)
	for _, name := range cfg.ThemeNames() {
		fmt.Fprintf(w, " - %s\n", name)
	}
	return nil
}

// runConfigView prints the merged configuration honoring --output.
func runConfigView(w io.Writer) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	if err := selectTheme(&cfg, themeName); err != nil {
		return err
	}
	switch configOutput {
	case "yaml", "":
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		// Round-trip through YAML so the keys match the file format.
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		var obj map[string]any
		if err := yaml.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode config: %w", err)
		}
		out, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	default:
		return fmt.Errorf("invalid output for config: %s (use yaml|json)", configOutput)
	}
}
