package suggest

// DefaultStep is how many suggestions are materialised per page.
const DefaultStep = 50

// DefaultMaxHeight is the number of visible panel rows.
const DefaultMaxHeight = 8

// scrollWindow renders a long list incrementally: rows are materialised a
// page (step) at a time, and a viewport of height rows slides over them.
type scrollWindow struct {
	step     int
	height   int
	rendered int
	offset   int
}

func newScrollWindow(step, height int) scrollWindow {
	if step <= 0 {
		step = DefaultStep
	}
	if height <= 0 {
		height = DefaultMaxHeight
	}
	return scrollWindow{step: step, height: height}
}

// reset starts over at the top of a list of total items.
func (w *scrollWindow) reset(total int) {
	w.offset = 0
	w.rendered = min(w.step, total)
}

// grow materialises pages until index is rendered.
func (w *scrollWindow) grow(index, total int) {
	for w.rendered <= index && w.rendered < total {
		w.rendered = min(w.rendered+w.step, total)
	}
}

// show scrolls so index is inside the viewport.
func (w *scrollWindow) show(index, total int) {
	if index < 0 || total == 0 {
		return
	}
	w.grow(index, total)
	if index < w.offset {
		w.offset = index
	}
	if index >= w.offset+w.height {
		w.offset = index - w.height + 1
	}
	w.clamp(total)
}

// scroll moves the viewport by delta rows, loading the next page when the
// viewport reaches the end of what is rendered.
func (w *scrollWindow) scroll(delta, total int) {
	w.offset += delta
	if w.offset+w.height >= w.rendered {
		w.grow(w.offset+w.height, total)
	}
	w.clamp(total)
}

func (w *scrollWindow) clamp(total int) {
	if w.rendered > total {
		w.rendered = total
	}
	maxOffset := w.rendered - w.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if w.offset > maxOffset {
		w.offset = maxOffset
	}
	if w.offset < 0 {
		w.offset = 0
	}
}

// visible returns the half-open index range [from, to) in the viewport.
func (w scrollWindow) visible(total int) (from, to int) {
	rendered := min(w.rendered, total)
	from = min(w.offset, rendered)
	to = min(from+w.height, rendered)
	return from, to
}
