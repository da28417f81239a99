package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/suggest/internal/limiter"
	"github.com/oakwood-commons/suggest/internal/ui"
	"github.com/oakwood-commons/suggest/pkg/loader"
	"github.com/oakwood-commons/suggest/pkg/settings"
	"github.com/oakwood-commons/suggest/pkg/suggest"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    loader.Format
		wantErr bool
	}{
		{"", loader.FormatAuto, false},
		{"auto", loader.FormatAuto, false},
		{"JSON", loader.FormatJSON, false},
		{"yml", loader.FormatYAML, false},
		{"jsonl", loader.FormatNDJSON, false},
		{"toml", loader.FormatTOML, false},
		{"txt", loader.FormatLines, false},
		{"lines", loader.FormatLines, false},
		{"md", loader.FormatMarkdown, false},
		{"markdown", loader.FormatMarkdown, false},
		{"xml", loader.FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func withCatalogueFlags(t *testing.T, stdin string, flags ...string) {
	t.Helper()
	origPiped, origReader, origFlags, origFormat := stdinIsPiped, stdinReader, suggestionFlags, inputFormat
	stdinIsPiped = func() bool { return stdin != "" }
	stdinReader = func() io.Reader { return strings.NewReader(stdin) }
	suggestionFlags = flags
	inputFormat = "auto"
	t.Cleanup(func() {
		stdinIsPiped, stdinReader, suggestionFlags, inputFormat = origPiped, origReader, origFlags, origFormat
	})
}

func TestLoadCatalogueStdinThenFlags(t *testing.T) {
	withCatalogueFlags(t, `["a", "b"]`, "c")
	run := settings.NewCliParams()

	items, err := loadCatalogue(nil, run)
	require.NoError(t, err)
	assert.Equal(t, suggest.Plains("a", "b", "c"), items)
	assert.True(t, run.Source.FromStdin)
	assert.True(t, run.Source.FromFlags)
	assert.Equal(t, "stdin", run.Source.Name())
}

func TestLoadCatalogueFlagsOnly(t *testing.T) {
	withCatalogueFlags(t, "", "x", "y")
	run := settings.NewCliParams()

	items, err := loadCatalogue(nil, run)
	require.NoError(t, err)
	assert.Equal(t, suggest.Plains("x", "y"), items)
	assert.Equal(t, "flags", run.Source.Name())
}

func TestLoadCatalogueNothing(t *testing.T) {
	withCatalogueFlags(t, "")
	_, err := loadCatalogue(nil, settings.NewCliParams())
	assert.ErrorIs(t, err, errNoCatalogue)
}

func TestLoadCatalogueFile(t *testing.T) {
	withCatalogueFlags(t, "")
	path := writeFile(t, "colors.json", `{"r": "Red", "g": "Green"}`)
	run := settings.NewCliParams()

	items, err := loadCatalogue([]string{path}, run)
	require.NoError(t, err)
	assert.Equal(t, []suggest.Suggestion{suggest.Item("g", "Green"), suggest.Item("r", "Red")}, items)
	assert.Equal(t, path, run.Source.Name())
}

func TestFilterCatalogue(t *testing.T) {
	items := suggest.Plains("apple", "avocado", "banana", "apricot")

	got, err := filterCatalogue(items, `_.value.startsWith("a")`, limiter.Config{Tail: 2})
	require.NoError(t, err)
	assert.Equal(t, suggest.Plains("avocado", "apricot"), got)

	got, err = filterCatalogue(items, "", limiter.Config{Offset: 3})
	require.NoError(t, err)
	assert.Equal(t, suggest.Plains("apricot"), got)

	_, err = filterCatalogue(items, "_.nope(", limiter.Config{})
	assert.Error(t, err)
}

func TestPrintResultText(t *testing.T) {
	var buf bytes.Buffer
	res := ui.Result{Submitted: true, Fields: []ui.FieldResult{{ID: "a", Value: "one"}, {ID: "b", Value: "two"}}}
	require.NoError(t, printResult(&buf, res, "text"))
	assert.Equal(t, "one\ntwo\n", buf.String())

	assert.Error(t, printResult(&buf, res, "csv"))
}

func TestPrintResultYAMLIndent(t *testing.T) {
	var buf bytes.Buffer
	res := ui.Result{Submitted: true, Fields: []ui.FieldResult{{ID: "a", Value: "one", Selected: map[string]any{"value": "one"}}}}
	require.NoError(t, printResult(&buf, res, "yaml"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "submitted: true\nfields:\n"))
	assert.Contains(t, out, "- id: a\n")
	assert.Contains(t, out, "selected:\n")
	assert.NotContains(t, out, "\t")
}

func TestResolveSnapshotSize(t *testing.T) {
	got := resolveSnapshotSize(100, 40, 0, 0)
	assert.Equal(t, 100, got.Width)
	assert.Equal(t, 40, got.Height)

	got = resolveSnapshotSize(0, 0, 90, 30)
	assert.Equal(t, 90, got.Width)
	assert.Equal(t, 30, got.Height)

	got = resolveSnapshotSize(50, 0, 90, 30)
	assert.Equal(t, 50, got.Width)
	assert.Equal(t, 30, got.Height)
}

func TestDetectTerminalSizeFallsBackToColumns(t *testing.T) {
	orig := termGetSize
	termGetSize = func(int) (int, int, error) { return 0, 0, io.EOF }
	t.Cleanup(func() { termGetSize = orig })

	t.Setenv("COLUMNS", "77")
	w, h := detectTerminalSize()
	assert.Equal(t, 77, w)
	assert.Equal(t, 0, h)

	t.Setenv("COLUMNS", "")
	w, _ = detectTerminalSize()
	assert.Equal(t, defaultFallbackTermWidth, w)
}

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func TestGetProgramOptionsWithoutPipe(t *testing.T) {
	orig := stdinIsPiped
	stdinIsPiped = func() bool { return false }
	t.Cleanup(func() { stdinIsPiped = orig })

	opts, cleanup := getProgramOptions()
	assert.Nil(t, opts)
	cleanup()
}

func TestGetProgramOptionsNoTerminal(t *testing.T) {
	origPiped, origOpen := stdinIsPiped, openTerminalIOFn
	stdinIsPiped = func() bool { return true }
	openTerminalIOFn = func() (*os.File, *os.File, error) { return nil, nil, os.ErrNotExist }
	t.Cleanup(func() { stdinIsPiped, openTerminalIOFn = origPiped, origOpen })

	opts, cleanup := getProgramOptions()
	assert.Nil(t, opts)
	cleanup()
}
