package suggest

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Edge names used by Align.
const (
	EdgeTop    = "top"
	EdgeBottom = "bottom"
	EdgeLeft   = "left"
	EdgeRight  = "right"
)

// Align pins edges of the panel to edges of its anchor. Top: "bottom" puts
// the panel's top edge on the anchor's bottom edge. Empty fields are unset;
// Top wins over Bottom and Left wins over Right.
type Align struct {
	Top    string `yaml:"top,omitempty"`
	Bottom string `yaml:"bottom,omitempty"`
	Left   string `yaml:"left,omitempty"`
	Right  string `yaml:"right,omitempty"`
}

// DefaultAlign opens the panel below the anchor, left edges aligned.
func DefaultAlign() Align {
	return Align{Top: EdgeBottom, Left: EdgeLeft}
}

// IsZero reports whether no edge is pinned.
func (a Align) IsZero() bool {
	return a == Align{}
}

// Rect is a cell rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Place positions a w×h panel against anchor within a screen of the given
// size. A zero screen dimension disables clamping on that axis.
func (a Align) Place(anchor Rect, w, h, screenW, screenH int) Rect {
	if a.IsZero() {
		a = DefaultAlign()
	}
	out := Rect{W: w, H: h}

	switch {
	case a.Top == EdgeTop:
		out.Y = anchor.Y
	case a.Top == EdgeBottom:
		out.Y = anchor.Y + anchor.H
	case a.Bottom == EdgeTop:
		out.Y = anchor.Y - h
	case a.Bottom == EdgeBottom:
		out.Y = anchor.Y + anchor.H - h
	default:
		out.Y = anchor.Y + anchor.H
	}

	switch {
	case a.Left == EdgeLeft:
		out.X = anchor.X
	case a.Left == EdgeRight:
		out.X = anchor.X + anchor.W
	case a.Right == EdgeRight:
		out.X = anchor.X + anchor.W - w
	case a.Right == EdgeLeft:
		out.X = anchor.X - w
	default:
		out.X = anchor.X
	}

	out.X = clampAxis(out.X, w, screenW)
	out.Y = clampAxis(out.Y, h, screenH)
	return out
}

func clampAxis(pos, size, limit int) int {
	if limit > 0 && pos+size > limit {
		pos = limit - size
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// Overlay draws panel over base with its top-left cell at (x, y). Lines of
// base are padded as needed; cells of base outside the panel are kept.
func Overlay(base, panel string, x, y int) string {
	if panel == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	panelLines := strings.Split(panel, "\n")
	for len(baseLines) < y+len(panelLines) {
		baseLines = append(baseLines, "")
	}
	for i, pl := range panelLines {
		row := y + i
		if row < 0 {
			continue
		}
		baseLines[row] = overlayLine(baseLines[row], pl, x)
	}
	return strings.Join(baseLines, "\n")
}

func overlayLine(base, over string, x int) string {
	if x < 0 {
		over = ansi.TruncateLeft(over, -x, "")
		x = 0
	}
	overW := ansi.StringWidth(over)
	baseW := ansi.StringWidth(base)
	if baseW < x {
		base += strings.Repeat(" ", x-baseW)
		baseW = x
	}
	left := ansi.Truncate(base, x, "")
	right := ""
	if baseW > x+overW {
		right = ansi.TruncateLeft(base, x+overW, "")
	}
	if strings.Contains(base, "\x1b") || strings.Contains(over, "\x1b") {
		return left + ansi.ResetStyle + over + ansi.ResetStyle + right
	}
	return left + over + right
}
