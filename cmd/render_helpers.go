package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/suggest/internal/ui"
)

const defaultFallbackTermWidth = 120

type snapshotSize struct {
	Width          int
	Height         int
	DetectedWidth  int
	DetectedHeight int
}

func resolveSnapshotSize(flagWidth, flagHeight, detectedWidth, detectedHeight int) snapshotSize {
	width := flagWidth
	height := flagHeight
	usedDetectW := detectedWidth
	usedDetectH := detectedHeight

	if width <= 0 || height <= 0 {
		if usedDetectW <= 0 || usedDetectH <= 0 {
			if w, h := detectTerminalSize(); w > 0 || h > 0 {
				if usedDetectW <= 0 {
					usedDetectW = w
				}
				if usedDetectH <= 0 {
					usedDetectH = h
				}
			}
		}
		if width <= 0 && usedDetectW > 0 {
			width = usedDetectW
		}
		if height <= 0 && usedDetectH > 0 {
			height = usedDetectH
		}
	}

	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	return snapshotSize{
		Width:          width,
		Height:         height,
		DetectedWidth:  usedDetectW,
		DetectedHeight: usedDetectH,
	}
}

// detectTerminalSize returns the best-effort terminal width/height by probing
// stdout, stderr, and stdin, then falling back to $COLUMNS.
func detectTerminalSize() (int, int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := termGetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 0
}

// renderSnapshotOutput renders one frame of the form after the startup keys
// and prints it.
func renderSnapshotOutput(cmd *cobra.Command, opts ui.Options) error {
	sizing := resolveSnapshotSize(opts.Width, opts.Height, 0, 0)
	opts.Width, opts.Height = sizing.Width, sizing.Height
	if debug {
		opts.Logger.V(1).Info("snapshot size resolved", "width", sizing.Width, "height", sizing.Height,
			"detected_width", sizing.DetectedWidth, "detected_height", sizing.DetectedHeight)
	}
	view, _, err := ui.RenderSnapshot(ui.SnapshotConfig{Options: opts, StartKeys: startKeys})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), view)
	return err
}
