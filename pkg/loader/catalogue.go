package loader

import (
	"fmt"
	"io"
	"sort"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// CatalogueKey is the top-level key holding the list in map-shaped documents.
const CatalogueKey = "suggestions"

// Suggestions flattens parsed documents into a suggestion list.
//
// Each document may be a list, a map with a "suggestions" list, a single
// item with a "value" key, a map of value to label, or a scalar.
func Suggestions(docs []any) ([]suggest.Suggestion, error) {
	var out []suggest.Suggestion
	for i, doc := range docs {
		items, err := fromDocument(doc)
		if err != nil {
			if len(docs) > 1 {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// LoadSuggestions parses input and flattens it.
func LoadSuggestions(input string, format Format) ([]suggest.Suggestion, error) {
	docs, err := LoadData(input, format)
	if err != nil {
		return nil, err
	}
	return Suggestions(docs)
}

// LoadSuggestionsReader reads and flattens a catalogue from r.
func LoadSuggestionsReader(r io.Reader, format Format) ([]suggest.Suggestion, error) {
	docs, err := LoadReader(r, format)
	if err != nil {
		return nil, err
	}
	return Suggestions(docs)
}

// LoadSuggestionsFile reads and flattens the catalogue at path.
func LoadSuggestionsFile(path string) ([]suggest.Suggestion, error) {
	docs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	items, err := Suggestions(docs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

func fromDocument(doc any) ([]suggest.Suggestion, error) {
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		return fromList(v)
	case map[string]any:
		return fromMap(v)
	case map[any]any:
		return fromMap(stringKeys(v))
	}
	return []suggest.Suggestion{suggest.FromAny(doc)}, nil
}

func fromList(list []any) ([]suggest.Suggestion, error) {
	out := make([]suggest.Suggestion, 0, len(list))
	for i, item := range list {
		switch v := item.(type) {
		case []any:
			return nil, fmt.Errorf("item %d: nested lists are not suggestions", i)
		case map[any]any:
			item = stringKeys(v)
		}
		if m, ok := item.(map[string]any); ok {
			if _, hasValue := m["value"]; !hasValue {
				return nil, fmt.Errorf("item %d: object has no %q key", i, "value")
			}
		}
		out = append(out, suggest.FromAny(item))
	}
	return out, nil
}

func fromMap(m map[string]any) ([]suggest.Suggestion, error) {
	if list, ok := m[CatalogueKey]; ok {
		switch v := list.(type) {
		case []any:
			return fromList(v)
		case []map[string]any:
			items := make([]any, len(v))
			for i := range v {
				items[i] = v[i]
			}
			return fromList(items)
		case nil:
			return nil, nil
		}
		return nil, fmt.Errorf("%q must be a list, got %T", CatalogueKey, list)
	}
	if _, ok := m["value"]; ok {
		return []suggest.Suggestion{suggest.FromAny(m)}, nil
	}

	// value: label dictionary, ordered by value.
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]suggest.Suggestion, 0, len(keys))
	for _, k := range keys {
		switch label := m[k].(type) {
		case map[string]any, map[any]any, []any:
			return nil, fmt.Errorf("key %q: expected a label, got %T", k, label)
		case nil:
			out = append(out, suggest.Item(k, nil))
		default:
			out = append(out, suggest.Item(k, fmt.Sprint(label)))
		}
	}
	return out, nil
}

func stringKeys(m map[any]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fmt.Sprint(k)] = v
	}
	return out
}
