package config

import "github.com/oakwood-commons/suggest/pkg/suggest"

func mergeMessages(base, o suggest.Messages) suggest.Messages {
	if o.SuggestionsCount != "" {
		base.SuggestionsCount = o.SuggestionsCount
	}
	if o.SuggestionsExist != "" {
		base.SuggestionsExist = o.SuggestionsExist
	}
	if o.SuggestionIsOpen != "" {
		base.SuggestionIsOpen = o.SuggestionIsOpen
	}
	if o.EnterSelect != "" {
		base.EnterSelect = o.EnterSelect
	}
	return base
}

func mergeKeys(base, o suggest.KeyOverrides) suggest.KeyOverrides {
	if len(o.Next) > 0 {
		base.Next = append([]string(nil), o.Next...)
	}
	if len(o.Prev) > 0 {
		base.Prev = append([]string(nil), o.Prev...)
	}
	if len(o.Select) > 0 {
		base.Select = append([]string(nil), o.Select...)
	}
	if len(o.Close) > 0 {
		base.Close = append([]string(nil), o.Close...)
	}
	if len(o.Tab) > 0 {
		base.Tab = append([]string(nil), o.Tab...)
	}
	return base
}

func suggestKeysClone(k suggest.KeyOverrides) suggest.KeyOverrides {
	return mergeKeys(suggest.KeyOverrides{}, k)
}
