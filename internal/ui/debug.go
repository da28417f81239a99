package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// DefaultMaxDebugEvents bounds the debug event buffer.
const DefaultMaxDebugEvents = 200

// DebugEvent is one line of the debug log.
type DebugEvent struct {
	Seq     int
	Message string
}

// DebugModel keeps recent events and renders the debug bar.
type DebugModel struct {
	Visible bool
	Width   int
	Max     int
	Events  []DebugEvent
	seq     int
	style   lipgloss.Style
}

// NewDebugModel creates a debug model holding at most maxEvents events.
func NewDebugModel(maxEvents int) DebugModel {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxDebugEvents
	}
	return DebugModel{Width: 80, Max: maxEvents}
}

// Record appends an event, dropping the oldest when full.
func (m *DebugModel) Record(format string, args ...any) {
	m.seq++
	m.Events = append(m.Events, DebugEvent{Seq: m.seq, Message: fmt.Sprintf(format, args...)})
	if over := len(m.Events) - m.Max; over > 0 {
		m.Events = append([]DebugEvent(nil), m.Events[over:]...)
	}
}

// Messages returns the recorded messages, oldest first.
func (m *DebugModel) Messages() []string {
	out := make([]string, len(m.Events))
	for i, ev := range m.Events {
		out[i] = ev.Message
	}
	return out
}

// View renders the state line when visible.
func (m DebugModel) View(info DebugInfo) string {
	if !m.Visible {
		return ""
	}
	line := fmt.Sprintf("DBG: win=%dx%d focus=%d state=%s active=%d selected=%d drop=%v pending=%v n=%d value=%q",
		info.WinWidth, info.WinHeight, info.Focus, info.State, info.Active, info.Selected,
		info.DropVisible, info.ResetPending, info.Suggestions, info.Value)
	if m.Width > 0 {
		line = ansi.Truncate(line, m.Width, "...")
		if pad := m.Width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
	}
	return m.style.Render(line)
}

// DebugInfo is the state shown in the debug bar.
type DebugInfo struct {
	WinWidth     int
	WinHeight    int
	Focus        int
	State        string
	Active       int
	Selected     int
	DropVisible  bool
	ResetPending bool
	Suggestions  int
	Value        string
}
