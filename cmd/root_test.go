package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func resetRootCmdState() {
	for _, c := range []*cobra.Command{rootCmd, configCmd, themesCmd, versionCmd} {
		resetFlags(c.Flags())
		resetFlags(c.PersistentFlags())
	}
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
}

// runCLI executes the root command with args and returns stdout. Piped
// stdin is off unless stdin is non-empty.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetRootCmdState()
	// Isolate from user config by pointing XDG_CONFIG_HOME to a temp dir.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origPiped, origReader := stdinIsPiped, stdinReader
	stdinIsPiped = func() bool { return stdin != "" }
	stdinReader = func() io.Reader { return strings.NewReader(stdin) }
	t.Cleanup(func() {
		stdinIsPiped, stdinReader = origPiped, origReader
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const statesYAML = `suggestions:
  - value: AL
    label: Alabama
  - value: AK
    label: Alaska
  - value: AZ
    label: Arizona
  - value: CA
    label: California
`

func TestCLI_SnapshotFromFlags(t *testing.T) {
	out, err := runCLI(t, "", "--snapshot", "--no-color", "-s", "red", "-s", "green", "--width", "60", "--height", "20")
	require.NoError(t, err)

	assert.Contains(t, out, "green")
	assert.Contains(t, out, "2 suggestions available")
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 20)
}

func TestCLI_SnapshotFromFileWithWhereAndLimit(t *testing.T) {
	path := writeFile(t, "states.yaml", statesYAML)
	out, err := runCLI(t, "", path, "--snapshot", "--no-color", "--width", "60", "--height", "20",
		"--where", `_.label.startsWith("A")`, "--limit", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Alabama")
	assert.Contains(t, out, "Alaska")
	assert.NotContains(t, out, "Arizona")
	assert.NotContains(t, out, "California")
	assert.Contains(t, out, "2 suggestions available")
}

func TestCLI_SnapshotFromStdin(t *testing.T) {
	out, err := runCLI(t, "one\ntwo\nthree\n", "--snapshot", "--no-color", "--width", "60", "--height", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "3 suggestions available")
}

func TestCLI_SnapshotAppliesPressAndLabel(t *testing.T) {
	out, err := runCLI(t, "", "--snapshot", "--no-color", "-s", "red", "-s", "green",
		"--label", "Color", "--press", "<Down><Down>", "--width", "60", "--height", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "Color")
	assert.Contains(t, out, "green (Press Enter to Select)")
}

func TestCLI_SnapshotTypedTextFiltersLive(t *testing.T) {
	out, err := runCLI(t, "", "--snapshot", "--no-color", "-s", "red", "-s", "rose", "-s", "blue",
		"--press", "r", "--width", "60", "--height", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "2 suggestions available")
	assert.NotContains(t, out, "blue")
}

func TestCLI_PressSubmitPrintsText(t *testing.T) {
	out, err := runCLI(t, "", "-s", "red", "-s", "green", "--press", "<Down><CR>", "--press", "<CR>")
	require.NoError(t, err)
	assert.Equal(t, "red\n", out)
}

func TestCLI_PressSubmitPrintsJSON(t *testing.T) {
	path := writeFile(t, "states.yaml", statesYAML)
	out, err := runCLI(t, "", path, "-o", "json", "--press", "<Down><Down><CR><CR>")
	require.NoError(t, err)

	var res struct {
		Submitted bool `json:"submitted"`
		Fields    []struct {
			ID       string         `json:"id"`
			Value    string         `json:"value"`
			Selected map[string]any `json:"selected"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Submitted)
	require.Len(t, res.Fields, 1)
	assert.Equal(t, "value", res.Fields[0].ID)
	assert.Equal(t, "Alaska", res.Fields[0].Value)
	assert.Equal(t, map[string]any{"value": "AK", "label": "Alaska"}, res.Fields[0].Selected)
}

func TestCLI_PressSubmitPrintsYAMLAndTOML(t *testing.T) {
	out, err := runCLI(t, "", "-s", "red", "-o", "yaml", "--value", "re", "--press", "<CR>")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, true, doc["submitted"])

	out, err = runCLI(t, "", "-s", "red", "-o", "toml", "--press", "<CR>")
	require.NoError(t, err)
	assert.Contains(t, out, "submitted = true")
}

func TestCLI_CancelReturnsError(t *testing.T) {
	_, err := runCLI(t, "", "-s", "red", "--press", "<C-c>")
	assert.ErrorIs(t, err, errCancelled)
}

func TestCLI_NoCatalogueShowsHelp(t *testing.T) {
	out, err := runCLI(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--suggestion")
}

func TestCLI_FlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"limit and tail", []string{"-s", "a", "--limit", "1", "--tail", "1"}, "mutually exclusive"},
		{"negative offset", []string{"-s", "a", "--offset", "-1"}, "non-negative"},
		{"bad output", []string{"-s", "a", "-o", "csv"}, "invalid --output"},
		{"bad match", []string{"-s", "a", "--match", "fuzzy"}, "invalid --match"},
		{"bad format", []string{"-s", "a", "--format", "xml"}, "invalid --format"},
		{"bad where", []string{"-s", "a", "--where", "_.value +"}, "--where"},
		{"non-bool where", []string{"-s", "a", "--where", "_.value"}, "--where"},
		{"negative debounce", []string{"-s", "a", "--debounce", "-1s"}, "--debounce"},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.yaml")}, "load catalogue"},
		{"missing config", []string{"-s", "a", "--config-file", filepath.Join(t.TempDir(), "nope.yaml")}, "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCLI_UnknownTheme(t *testing.T) {
	_, err := runCLI(t, "", "-s", "a", "--theme", "neon", "--snapshot")
	var themeErr themeSelectionError
	require.True(t, errors.As(err, &themeErr))
	assert.Equal(t, "neon", themeErr.Selected)
	assert.Contains(t, themeErr.Available, "dark")
}

func TestCLI_ExplicitFormat(t *testing.T) {
	// Lines that would otherwise be read as YAML keys.
	path := writeFile(t, "list.dat", "a: b\nc: d\n")
	out, err := runCLI(t, "", path, "--format", "lines", "--snapshot", "--no-color", "--width", "60", "--height", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "2 suggestions available")
}

func TestCLI_LogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "suggest.json")
	_, err := runCLI(t, "", "-s", "a", "--snapshot", "--log-file", logPath)
	require.NoError(t, err)
	_, statErr := os.Stat(logPath)
	assert.NoError(t, statErr)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "suggest")
	assert.Contains(t, out, "commit")
}

func TestRootFlagVersion(t *testing.T) {
	out, err := runCLI(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "suggest")
}

func TestThemesCommand(t *testing.T) {
	out, err := runCLI(t, "", "themes")
	require.NoError(t, err)
	assert.Contains(t, out, "Available themes (default: dark):")
	for _, name := range []string{"dark", "light", "warm"} {
		assert.Contains(t, out, " - "+name+"\n")
	}

	out, err = runCLI(t, "", "themes", "--theme", "warm")
	require.NoError(t, err)
	assert.Contains(t, out, "(default: warm)")
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "", "config")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "app")
	assert.Contains(t, doc, "ui")

	out, err = runCLI(t, "", "config", "-o", "json")
	require.NoError(t, err)
	var obj map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &obj))
	ui, ok := obj["ui"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, ui, "themes")

	_, err = runCLI(t, "", "config", "-o", "table")
	assert.Error(t, err)
}

func TestConfigCommandMergesUserFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "ui:\n  behavior:\n    match: contains\n")
	out, err := runCLI(t, "", "config", "--config-file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "match: contains")
	assert.Contains(t, out, "themes:")
}
