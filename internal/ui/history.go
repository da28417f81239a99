package ui

import (
	"fmt"

	"github.com/oakwood-commons/suggest/internal/ui/table"
	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// HistoryEntry records one pick.
type HistoryEntry struct {
	Seq        int
	Field      string
	Suggestion suggest.Suggestion
}

func newHistory(limit int) *table.Model[HistoryEntry] {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "FIELD", Width: 10},
		{Title: "VALUE", Width: 12},
		{Title: "LABEL", Width: 20},
	}
	toRow := func(e HistoryEntry) table.Row {
		return table.Row{
			fmt.Sprint(e.Seq),
			e.Field,
			fmt.Sprint(e.Suggestion.Value),
			e.Suggestion.DisplayLabel(),
		}
	}
	keyFn := func(e HistoryEntry) string {
		return e.Field + " " + e.Suggestion.DisplayLabel()
	}
	t := table.NewModel(cols, toRow, keyFn)
	t.SetLimit(limit)
	return t
}
