// Package table is a typed wrapper around the bubbles table used for the
// selection history.
package table

import (
	"fmt"
	"image/color"
	"strings"

	bubtable "charm.land/bubbles/v2/table"
	"charm.land/lipgloss/v2"
)

// Column and Row are re-exported so callers need not import bubbles.
type Column = bubtable.Column
type Row = bubtable.Row

// Model displays values of type V, one per row. It keeps at most Limit rows,
// dropping the oldest first, and keeps the cursor on the newest row.
type Model[V any] struct {
	table    bubtable.Model
	styles   bubtable.Styles
	rows     []V
	filter   string
	filtered []V
	columns  []Column

	toRow   func(V) Row
	keyFunc func(V) string

	limit   int
	width   int
	height  int
	noColor bool

	headerFG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// NewModel creates a table. toRow renders a value; keyFunc extracts the
// text SetFilter matches against.
func NewModel[V any](columns []Column, toRow func(V) Row, keyFunc func(V) string) *Model[V] {
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(false),
		bubtable.WithHeight(5),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	s.Selected = s.Selected.PaddingLeft(0).PaddingRight(0)
	s.Cell = lipgloss.NewStyle().Align(lipgloss.Left).PaddingLeft(0).PaddingRight(1)
	t.SetStyles(s)

	return &Model[V]{
		table:   t,
		styles:  s,
		columns: columns,
		toRow:   toRow,
		keyFunc: keyFunc,
		height:  5,
	}
}

// SetLimit caps the number of rows kept. Zero keeps everything.
func (m *Model[V]) SetLimit(n int) {
	m.limit = n
	m.trim()
	m.applyFilter()
}

// Append adds a row at the bottom.
func (m *Model[V]) Append(v V) {
	m.rows = append(m.rows, v)
	m.trim()
	m.applyFilter()
}

// SetRows replaces all rows.
func (m *Model[V]) SetRows(rows []V) {
	m.rows = append([]V(nil), rows...)
	m.trim()
	m.applyFilter()
}

// Rows returns the rows passing the filter.
func (m *Model[V]) Rows() []V {
	return m.filtered
}

// AllRows returns every kept row.
func (m *Model[V]) AllRows() []V {
	return m.rows
}

// Len is the number of kept rows.
func (m *Model[V]) Len() int {
	return len(m.rows)
}

// SetFilter keeps only rows whose key contains filter, ignoring case.
func (m *Model[V]) SetFilter(filter string) {
	m.filter = filter
	m.applyFilter()
}

// ClearFilter shows all rows.
func (m *Model[V]) ClearFilter() {
	m.SetFilter("")
}

func (m *Model[V]) trim() {
	if m.limit > 0 && len(m.rows) > m.limit {
		m.rows = append([]V(nil), m.rows[len(m.rows)-m.limit:]...)
	}
}

func (m *Model[V]) applyFilter() {
	if m.filter == "" {
		m.filtered = m.rows
	} else {
		needle := strings.ToLower(m.filter)
		m.filtered = make([]V, 0, len(m.rows))
		for _, row := range m.rows {
			if strings.Contains(strings.ToLower(m.keyFunc(row)), needle) {
				m.filtered = append(m.filtered, row)
			}
		}
	}
	tableRows := make([]Row, len(m.filtered))
	for i, row := range m.filtered {
		tableRows[i] = m.toRow(row)
	}
	m.table.SetRows(tableRows)
	if n := len(m.filtered); n > 0 {
		m.table.SetCursor(n - 1)
	}
}

// Cursor returns the cursor position.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor moves the cursor.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the row under the cursor, or nil when empty.
func (m *Model[V]) SelectedRow() *V {
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.filtered) {
		return nil
	}
	return &m.filtered[cursor]
}

// SetSize sets the width and the number of visible rows. The last column
// absorbs any width left over by the others.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(height)
	if len(m.columns) == 0 || width <= 0 {
		return
	}
	cols := append([]Column(nil), m.columns...)
	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.Width + m.styles.Cell.GetHorizontalFrameSize()
	}
	last := width - used - m.styles.Cell.GetHorizontalFrameSize()
	cols[len(cols)-1].Width = max(last, 4)
	m.table.SetColumns(cols)
	m.table.SetWidth(width)
}

// SetNoColor drops colors and marks the cursor row with reverse video.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets the header and cursor row colors.
func (m *Model[V]) SetColors(headerFG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles
	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}
	m.table.SetStyles(s)
	m.styles = s
}

// View renders the table.
func (m *Model[V]) View() string {
	return m.table.View()
}

// Height returns the rendered height, header included.
func (m *Model[V]) Height() int {
	return lipgloss.Height(m.View())
}

func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, filtered=%d, cursor=%d, filter=%q]",
		len(m.rows), len(m.filtered), m.Cursor(), m.filter)
}
