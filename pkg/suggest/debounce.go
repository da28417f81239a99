package suggest

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultDebounce delays opening the panel after focus or input so the
// triggering event finishes before the panel changes.
const DefaultDebounce = 10 * time.Millisecond

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// resetMsg is delivered when a scheduled reset fires.
type resetMsg struct {
	id  int
	tag int
}

// resetTask is a cancellable deferred reset. Only the most recently scheduled
// tag is honoured; Cancel invalidates any tick already in flight.
type resetTask struct {
	id      int
	tag     int
	pending bool
	delay   time.Duration
	closed  bool
}

// Schedule cancels any pending reset and returns a command that fires a new one.
func (t *resetTask) Schedule() tea.Cmd {
	if t.closed {
		return nil
	}
	t.tag++
	t.pending = true
	id, tag := t.id, t.tag
	if t.delay <= 0 {
		return func() tea.Msg { return resetMsg{id: id, tag: tag} }
	}
	return tea.Tick(t.delay, func(time.Time) tea.Msg {
		return resetMsg{id: id, tag: tag}
	})
}

// Cancel invalidates the pending reset, if any.
func (t *resetTask) Cancel() {
	if t.pending {
		t.tag++
	}
	t.pending = false
}

// Fire reports whether msg is the current reset for this task and consumes it.
func (t *resetTask) Fire(msg resetMsg) bool {
	if t.closed || msg.id != t.id || msg.tag != t.tag || !t.pending {
		return false
	}
	t.pending = false
	return true
}

// Pending reports whether a reset is scheduled.
func (t *resetTask) Pending() bool {
	return t.pending
}

// Close cancels the task for good.
func (t *resetTask) Close() {
	t.Cancel()
	t.closed = true
}
