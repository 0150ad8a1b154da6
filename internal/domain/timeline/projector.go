package timeline

import (
	"time"

	"frontdesk/internal/domain/shared/daterange"
)

// Window is the contiguous sub-range of the axis currently scrolled into
// view: Count day-columns starting at index Offset.
type Window struct {
	Offset int
	Count  int
}

func (w Window) last() int { return w.Offset + w.Count - 1 }

// Geometry is the on-screen placement of a bar in pixels, relative to the
// left edge of the visible window. Left may be negative for bars that start
// before the window; callers draw into a clipped viewport.
type Geometry struct {
	Left  int `json:"left"`
	Width int `json:"width"`
}

// bookingBarInsetPx leaves a gutter so booking pills do not touch the cell
// borders. Applied symmetrically, it never breaks the scroll-translation
// property.
const bookingBarInsetPx = 3

// Projector turns absolute axis indices into bar geometry for a fixed cell
// width. It is a pure function of its inputs: identical indices and window
// always produce identical geometry, and changing only the window offset
// translates every visible bar by exactly the offset delta times CellWidth.
type Projector struct {
	CellWidth int
}

// Project computes the raw geometry for an interval spanning axis indices
// [startIdx, endIdx]. It reports false when the interval is not rendered:
// either an index is -1 (date outside the loaded axis) or the interval lies
// entirely outside the window.
func (p Projector) Project(startIdx, endIdx int, w Window) (Geometry, bool) {
	if startIdx < 0 || endIdx < 0 {
		return Geometry{}, false
	}
	if w.Count <= 0 || endIdx < w.Offset || startIdx > w.last() {
		return Geometry{}, false
	}
	return Geometry{
		Left:  (startIdx - w.Offset) * p.CellWidth,
		Width: (endIdx - startIdx + 1) * p.CellWidth,
	}, true
}

// BookingBar projects a booking onto the window. The bar spans check-in
// through the check-out day's cell and is inset to float inside the cells.
func (p Projector) BookingBar(axis DateAxis, r daterange.DateRange, w Window) (Geometry, bool) {
	g, ok := p.Project(axis.IndexOf(r.CheckIn), axis.IndexOf(r.CheckOut), w)
	if !ok {
		return Geometry{}, false
	}
	g.Left += bookingBarInsetPx
	g.Width -= 2 * bookingBarInsetPx
	if g.Width < 1 {
		g.Width = 1
	}
	return g, true
}

// BlockBar projects a blocked range edge-to-edge; blocks render as a hatch
// fill rather than a labeled pill, so no inset.
func (p Projector) BlockBar(axis DateAxis, start, end time.Time, w Window) (Geometry, bool) {
	return p.Project(axis.IndexOf(start), axis.IndexOf(end), w)
}
