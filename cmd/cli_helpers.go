package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/suggest/internal/cel"
	"github.com/oakwood-commons/suggest/internal/limiter"
	"github.com/oakwood-commons/suggest/internal/ui"
	"github.com/oakwood-commons/suggest/pkg/loader"
	"github.com/oakwood-commons/suggest/pkg/settings"
	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// errNoCatalogue means no file, piped data or --suggestion was given.
var errNoCatalogue = errors.New("no suggestions provided")

var (
	stdinIsPiped = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	stdinReader  = func() io.Reader { return os.Stdin }
)

// parseFormat maps the --format flag to a loader format.
func parseFormat(s string) (loader.Format, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", "auto":
		return loader.FormatAuto, nil
	case "yml":
		return loader.FormatYAML, nil
	case "jsonl":
		return loader.FormatNDJSON, nil
	case "txt", "text":
		return loader.FormatLines, nil
	case "md":
		return loader.FormatMarkdown, nil
	case string(loader.FormatJSON), string(loader.FormatYAML), string(loader.FormatNDJSON), string(loader.FormatTOML), string(loader.FormatLines), string(loader.FormatMarkdown):
		return loader.Format(f), nil
	default:
		return loader.FormatAuto, fmt.Errorf("invalid --format %q (use auto|json|yaml|ndjson|toml|lines|markdown)", s)
	}
}

// loadCatalogue reads the file argument or piped stdin, then appends the
// --suggestion flags. It records the source in run.
func loadCatalogue(args []string, run *settings.Run) ([]suggest.Suggestion, error) {
	format, err := parseFormat(inputFormat)
	if err != nil {
		return nil, err
	}

	var items []suggest.Suggestion
	switch {
	case len(args) > 0:
		run.Source.Path = args[0]
		if format == loader.FormatAuto {
			items, err = loader.LoadSuggestionsFile(args[0])
		} else {
			var data []byte
			if data, err = os.ReadFile(args[0]); err == nil {
				items, err = loader.LoadSuggestions(string(data), format)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("load catalogue: %w", err)
		}
	case stdinIsPiped():
		run.Source.FromStdin = true
		items, err = loader.LoadSuggestionsReader(stdinReader(), format)
		if errors.Is(err, loader.ErrEmpty) && len(suggestionFlags) > 0 {
			err = nil
		}
		if err != nil {
			return nil, fmt.Errorf("load catalogue from stdin: %w", err)
		}
	}

	if len(suggestionFlags) > 0 {
		run.Source.FromFlags = true
		items = append(items, suggest.Plains(suggestionFlags...)...)
	}
	if !run.Source.FromStdin && !run.Source.FromFlags && run.Source.Path == "" {
		return nil, errNoCatalogue
	}
	return items, nil
}

// filterCatalogue applies --where, then the record limits.
func filterCatalogue(items []suggest.Suggestion, where string, limits limiter.Config) ([]suggest.Suggestion, error) {
	if strings.TrimSpace(where) != "" {
		var err error
		if items, err = cel.Filter(where, items); err != nil {
			return nil, fmt.Errorf("--where: %w", err)
		}
	}
	return limiter.Apply(limits, items), nil
}

func validateOutput(format string) error {
	switch format {
	case "text", "json", "yaml", "toml":
		return nil
	}
	return fmt.Errorf("invalid --output %q (use text|json|yaml|toml)", format)
}

// printResult writes the submitted form. Text prints one value per line;
// the structured formats print the whole result.
func printResult(w io.Writer, res ui.Result, format string) error {
	switch format {
	case "text":
		for _, f := range res.Fields {
			if _, err := fmt.Fprintln(w, f.Value); err != nil {
				return err
			}
		}
		return nil
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		return enc.Close()
	case "toml":
		data, err := toml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return validateOutput(format)
}
