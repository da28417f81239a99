// Package loader reads suggestion catalogues. A catalogue is JSON, YAML
// (single or multi-document), NDJSON, TOML, a Markdown list, or plain text
// with one suggestion per line; the format is taken from the file extension when
// there is one and detected from the content otherwise.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a catalogue encoding.
type Format string

const (
	FormatAuto     Format = ""
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatNDJSON   Format = "ndjson"
	FormatTOML     Format = "toml"
	FormatLines    Format = "lines"
	FormatMarkdown Format = "markdown" // only from a .md extension or explicitly
)

// ErrEmpty is returned for input with no content.
var ErrEmpty = errors.New("empty input")

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
	yamlKeyPattern      = regexp.MustCompile(`^\s*(?:-\s+)?[^\s:#][^:#]*:(\s|$)`)
)

// FormatForPath maps a file extension to a format. Unknown extensions
// return FormatAuto.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".toml":
		return FormatTOML
	case ".txt", ".lst":
		return FormatLines
	case ".md", ".markdown":
		return FormatMarkdown
	}
	return FormatAuto
}

// Detect guesses the format of input.
func Detect(input string) Format {
	input = strings.TrimSpace(input)
	if json.Valid([]byte(input)) {
		return FormatJSON
	}
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	// TOML [section] headers look like JSON arrays, so check TOML before the
	// loose JSON prefix test.
	if isLikelyTOML(lines) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return FormatJSON
	}
	if len(lines) > 1 && isLikelyLines(lines) {
		return FormatLines
	}
	return FormatYAML
}

// LoadData parses input into documents. Single-document formats return one
// element; NDJSON, multi-document YAML and plain lines return one per record.
func LoadData(input string, format Format) ([]any, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmpty
	}
	if format == FormatAuto {
		detected := Detect(input)
		docs, err := decode(input, detected)
		if err != nil && detected != FormatYAML {
			// Detection is heuristic; YAML also covers JSON.
			if fallback, yerr := loadYAML(input); yerr == nil {
				return fallback, nil
			}
		}
		return docs, err
	}
	docs, err := decode(input, format)
	if err == nil {
		return docs, nil
	}
	// A mislabelled file still loads if its content is recognisable.
	if detected := Detect(input); detected != format {
		if fallback, ferr := decode(input, detected); ferr == nil {
			return fallback, nil
		}
	}
	return nil, err
}

// LoadReader reads r to the end and parses it.
func LoadReader(r io.Reader, format Format) ([]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return LoadData(string(data), format)
}

// LoadFile reads path and parses it using the format implied by its extension.
func LoadFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	docs, err := LoadData(string(data), FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

func decode(input string, format Format) ([]any, error) {
	switch format {
	case FormatJSON:
		return loadJSON(input)
	case FormatNDJSON:
		return loadNDJSON(input)
	case FormatTOML:
		return loadTOML(input)
	case FormatLines:
		return loadLines(input)
	case FormatMarkdown:
		return loadMarkdown(input)
	case FormatYAML, FormatAuto:
		return loadYAML(input)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func loadJSON(input string) ([]any, error) {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return []any{data}, nil
}

func loadYAML(input string) ([]any, error) {
	var results []any
	decoder := yaml.NewDecoder(strings.NewReader(input))
	for {
		var doc any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if doc != nil {
			results = append(results, doc)
		}
	}
	if len(results) == 0 {
		return nil, errors.New("no documents found in YAML")
	}
	return results, nil
}

// loadNDJSON keeps lines that are not valid JSON as plain strings.
func loadNDJSON(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			results = append(results, line)
			continue
		}
		results = append(results, obj)
	}
	if len(results) == 0 {
		return nil, ErrEmpty
	}
	return results, nil
}

func loadTOML(input string) ([]any, error) {
	var data map[string]any
	if err := toml.Unmarshal([]byte(input), &data); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return []any{data}, nil
}

// loadLines treats every non-blank, non-comment line as one suggestion.
func loadLines(input string) ([]any, error) {
	lines := strings.Split(input, "\n")
	results := make([]any, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		results = append(results, line)
	}
	if len(results) == 0 {
		return nil, ErrEmpty
	}
	return results, nil
}

// isLikelyNDJSON requires a majority of non-empty lines to open a JSON
// object or array, so YAML lists are not mistaken for NDJSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount, nonEmpty := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

// isLikelyTOML looks for section headers or a majority of key = value lines.
func isLikelyTOML(lines []string) bool {
	sections, keyValues, nonEmpty := 0, 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}
	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}

// isLikelyLines reports text with no YAML structure: no keys, no list
// markers, no flow collections.
func isLikelyLines(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "- ") || trimmed == "-" || yamlKeyPattern.MatchString(line) {
			return false
		}
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return false
		}
	}
	return true
}
