package ui

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// RunModel runs the form as a Bubble Tea program and returns its result.
// Width and height of 0 are taken from the terminal; a fixed size is passed
// to the program so it does not wait for a resize. debugSink, when set,
// receives the debug log after the program exits.
func RunModel(opts Options, startKeys []string, debugSink func(string), progOpts ...tea.ProgramOption) (Result, error) {
	if opts.Width > 0 || opts.Height > 0 {
		w, h := terminalSize(opts.Width, opts.Height)
		opts.Width, opts.Height = w, h
		progOpts = append(progOpts, tea.WithWindowSize(w, h))
	}

	m, err := NewRootModel(opts)
	if err != nil {
		return Result{}, err
	}
	defer m.Close()

	if len(startKeys) > 0 {
		if cmd := m.Init(); cmd != nil {
			for _, msg := range runCmd(cmd) {
				Drive(m, msg)
			}
		}
		ApplyStartupKeys(m, startKeys)
		if m.quitting {
			flushDebugEvents(m, debugSink)
			return m.Result(), nil
		}
	}

	prog := tea.NewProgram(m, progOpts...)
	final, err := prog.Run()
	if err != nil {
		return Result{}, fmt.Errorf("run form: %w", err)
	}
	fm, ok := final.(*RootModel)
	if !ok || fm == nil {
		return Result{}, fmt.Errorf("unexpected final model %T", final)
	}
	flushDebugEvents(fm, debugSink)
	return fm.Result(), nil
}

// terminalSize fills in zero dimensions from the terminal, then 80x24.
func terminalSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return width, height
}

func flushDebugEvents(m *RootModel, debugSink func(string)) {
	if m == nil || debugSink == nil {
		return
	}
	for _, msg := range m.DebugMessages() {
		debugSink(msg)
	}
}
