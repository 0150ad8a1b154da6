package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"frontdesk/internal/domain/shared/daterange"
)

func TestProjectBasicGeometry(t *testing.T) {
	p := Projector{CellWidth: 40}
	w := Window{Offset: 0, Count: 14}

	g, ok := p.Project(2, 5, w)
	require.True(t, ok)
	require.Equal(t, Geometry{Left: 80, Width: 160}, g)

	// Single-cell interval.
	g, ok = p.Project(3, 3, w)
	require.True(t, ok)
	require.Equal(t, Geometry{Left: 120, Width: 40}, g)
}

func TestProjectScrollTranslation(t *testing.T) {
	p := Projector{CellWidth: 40}

	before, ok := p.Project(10, 14, Window{Offset: 0, Count: 30})
	require.True(t, ok)
	after, ok := p.Project(10, 14, Window{Offset: 7, Count: 30})
	require.True(t, ok)

	// Scrolling by 7 columns moves every bar by exactly 7*cellWidth; width
	// never changes.
	require.Equal(t, before.Left-7*40, after.Left)
	require.Equal(t, before.Width, after.Width)
}

func TestProjectClipsOffWindowIntervals(t *testing.T) {
	p := Projector{CellWidth: 40}
	w := Window{Offset: 10, Count: 14} // visible indices [10, 23]

	_, ok := p.Project(2, 9, w)
	require.False(t, ok, "entirely left of the window")
	_, ok = p.Project(24, 30, w)
	require.False(t, ok, "entirely right of the window")

	// Partially visible intervals still render, with negative Left when the
	// start precedes the window.
	g, ok := p.Project(8, 12, w)
	require.True(t, ok)
	require.Equal(t, -80, g.Left)
	require.Equal(t, 200, g.Width)
}

func TestProjectRejectsUnindexedDates(t *testing.T) {
	p := Projector{CellWidth: 40}
	w := Window{Offset: 0, Count: 14}

	_, ok := p.Project(-1, 5, w)
	require.False(t, ok)
	_, ok = p.Project(0, -1, w)
	require.False(t, ok)
	_, ok = p.Project(0, 5, Window{Offset: 0, Count: 0})
	require.False(t, ok)
}

func TestProjectIsPure(t *testing.T) {
	p := Projector{CellWidth: 25}
	w := Window{Offset: 3, Count: 20}
	first, ok1 := p.Project(5, 9, w)
	second, ok2 := p.Project(5, 9, w)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, first, second)
}

func TestBookingBarSpansCheckoutCellWithInset(t *testing.T) {
	axis, err := NewAxis(axisStart, 60)
	require.NoError(t, err)
	p := Projector{CellWidth: 40}
	w := Window{Offset: 0, Count: 30}

	r, err := daterange.New(axis.At(5), axis.At(10))
	require.NoError(t, err)

	g, ok := p.BookingBar(axis, r, w)
	require.True(t, ok)
	// Six cells (check-in index 5 through checkout index 10), inset on both
	// sides.
	require.Equal(t, 5*40+bookingBarInsetPx, g.Left)
	require.Equal(t, 6*40-2*bookingBarInsetPx, g.Width)
}

func TestBookingBarOutsideHorizonHidden(t *testing.T) {
	axis, err := NewAxis(axisStart, 30)
	require.NoError(t, err)
	p := Projector{CellWidth: 40}
	w := Window{Offset: 0, Count: 30}

	// Checkout beyond the loaded axis: no index, no bar.
	r, err := daterange.New(axis.At(28), daterange.AddDays(axisStart, 35))
	require.NoError(t, err)
	_, ok := p.BookingBar(axis, r, w)
	require.False(t, ok)
}

func TestBlockBarEdgeToEdge(t *testing.T) {
	axis, err := NewAxis(axisStart, 60)
	require.NoError(t, err)
	p := Projector{CellWidth: 40}
	w := Window{Offset: 0, Count: 30}

	g, ok := p.BlockBar(axis, axis.At(2), axis.At(4), w)
	require.True(t, ok)
	require.Equal(t, Geometry{Left: 80, Width: 120}, g)

	// Single-day block fills exactly one cell.
	g, ok = p.BlockBar(axis, axis.At(7), axis.At(7), w)
	require.True(t, ok)
	require.Equal(t, Geometry{Left: 280, Width: 40}, g)
}
