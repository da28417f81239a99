package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// LiveRegion is the status line that shows the latest announcement, the way
// a screen reader would speak it.
type LiveRegion struct {
	message string
	mode    suggest.Politeness
	count   int
	width   int
	style   lipgloss.Style
}

// Announce implements suggest.Announcer.
func (l *LiveRegion) Announce(message string, mode suggest.Politeness) {
	l.message = message
	l.mode = mode
	l.count++
}

// Message returns the latest announcement.
func (l *LiveRegion) Message() string {
	return l.message
}

// Count returns how many announcements were made.
func (l *LiveRegion) Count() int {
	return l.count
}

// Clear empties the region.
func (l *LiveRegion) Clear() {
	l.message = ""
	l.mode = ""
}

// SetWidth sets the line width.
func (l *LiveRegion) SetWidth(w int) {
	l.width = w
}

// View renders a single line, truncated to the width.
func (l *LiveRegion) View() string {
	text := l.message
	if l.mode == suggest.Assertive && text != "" {
		text = "! " + text
	}
	text = strings.ReplaceAll(text, "\n", " ")
	if l.width > 0 {
		text = ansi.Truncate(text, l.width, "…")
	}
	return l.style.Render(text)
}
