package ui

import (
	"strings"
	"time"
)

// SnapshotConfig configures a non-interactive render of the form.
type SnapshotConfig struct {
	Options
	StartKeys []string
}

// RenderSnapshot builds the form, focuses the first field, applies the
// startup keys and renders one frame padded to the configured height.
// Deferred panel updates run immediately.
func RenderSnapshot(cfg SnapshotConfig) (string, Result, error) {
	opts := cfg.Options
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}
	zero := time.Duration(0)
	opts.Debounce = &zero

	m, err := NewRootModel(opts)
	if err != nil {
		return "", Result{}, err
	}
	defer m.Close()

	for _, msg := range runCmd(m.Init()) {
		Drive(m, msg)
	}
	ApplyStartupKeys(m, cfg.StartKeys)

	res := m.Result()
	view := m.Render()
	if view == "" {
		return "", res, nil
	}
	return padSnapshot(view, opts.Width, opts.Height), res, nil
}

// padSnapshot pads short frames with blank lines up to height.
func padSnapshot(view string, width, height int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	pad := strings.Repeat(" ", max(width, 1))
	for len(lines) < height {
		lines = append(lines, pad)
	}
	return strings.Join(lines, "\n")
}
