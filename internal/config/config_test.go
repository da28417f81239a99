package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "suggest", cfg.App.Name)
	assert.Equal(t, "dark", cfg.UI.Theme.Default)
	assert.Equal(t, []string{"dark", "light", "warm"}, cfg.ThemeNames())
	assert.Equal(t, suggest.DefaultAlign(), cfg.UI.Drop)
	assert.Equal(t, suggest.DefaultMessages(), cfg.UI.Messages)
	assert.Equal(t, MatchPrefix, cfg.UI.Behavior.Match)
	assert.Equal(t, 8, IntOr(cfg.UI.Behavior.MaxHeight, 0))
	assert.Equal(t, []string{"up", "ctrl+p"}, cfg.UI.Keys.Prev)

	d, err := cfg.UI.Behavior.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, suggest.DefaultDebounce, d)
}

func TestDefaultReturnsCopy(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)
	first.UI.Themes["dark"] = Theme{}
	first.UI.Keys.Next[0] = "j"

	second, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "81", second.UI.Themes["dark"].BorderFocus)
	assert.Equal(t, "down", second.UI.Keys.Next[0])
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestLoadMergesUserFile(t *testing.T) {
	path := writeConfig(t, `
ui:
  theme:
    default: ocean
  behavior:
    debounce: 50ms
    match: contains
    max_height: 4
  drop:
    bottom: top
    right: right
  messages:
    enter_select: "%s, press Enter"
  keys:
    next: [j]
  themes:
    ocean:
      border_focus: "39"
    dark:
      active_bg: "52"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ocean", cfg.UI.Theme.Default)
	assert.Equal(t, MatchContains, cfg.UI.Behavior.Match)
	assert.Equal(t, 4, IntOr(cfg.UI.Behavior.MaxHeight, 0))
	assert.Equal(t, 50, IntOr(cfg.UI.Behavior.Step, 0), "unset fields keep defaults")
	assert.Equal(t, suggest.Align{Bottom: suggest.EdgeTop, Right: suggest.EdgeRight}, cfg.UI.Drop)
	assert.Equal(t, "%s, press Enter", cfg.UI.Messages.EnterSelect)
	assert.Equal(t, suggest.DefaultMessages().SuggestionsCount, cfg.UI.Messages.SuggestionsCount)
	assert.Equal(t, []string{"j"}, cfg.UI.Keys.Next)
	assert.Equal(t, []string{"esc"}, cfg.UI.Keys.Close)

	d, err := cfg.UI.Behavior.DebounceDuration()
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, d)

	dark := cfg.UI.Themes["dark"]
	assert.Equal(t, "52", dark.ActiveBG)
	assert.Equal(t, "81", dark.BorderFocus, "theme fields merge individually")

	ocean, ok := cfg.ActiveTheme()
	require.True(t, ok)
	assert.Equal(t, "39", ocean.BorderFocus)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "unknown key", body: "ui:\n  colour: red\n", wantErr: "colour"},
		{name: "unknown theme", body: "ui:\n  theme:\n    default: missing\n", wantErr: `unknown theme "missing"`},
		{name: "bad debounce", body: "ui:\n  behavior:\n    debounce: soon\n", wantErr: "ui.behavior.debounce"},
		{name: "negative debounce", body: "ui:\n  behavior:\n    debounce: -5ms\n", wantErr: "must not be negative"},
		{name: "bad match", body: "ui:\n  behavior:\n    match: fuzzy\n", wantErr: "ui.behavior.match"},
		{name: "zero height", body: "ui:\n  behavior:\n    max_height: 0\n", wantErr: "ui.behavior.max_height must be positive"},
		{name: "bad edge", body: "ui:\n  drop:\n    top: left\n", wantErr: `ui.drop.top: invalid edge "left"`},
		{name: "count message verb", body: "ui:\n  messages:\n    suggestions_count: \"%s options\"\n", wantErr: "ui.messages.suggestions_count"},
		{name: "not yaml", body: "ui: [", wantErr: "decode config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "explicit.yaml", ResolvePath("explicit.yaml"))

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Equal(t, "", ResolvePath(""), "missing user config resolves to nothing")

	dir := filepath.Join(xdg, "suggest")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}\n"), 0o644))
	assert.Equal(t, path, ResolvePath(""))
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "default: dark")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}
