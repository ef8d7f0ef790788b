package menuplan

import "math"

const (
	// SwipeThreshold is the horizontal travel in px that changes the week.
	SwipeThreshold = 50.0
)

// CellMetrics converts terminal cells to pixel equivalents so gesture
// thresholds keep their meaning.
type CellMetrics struct {
	Width  float64
	Height float64
}

// DefaultCellMetrics assumes an 8x16 px terminal cell.
var DefaultCellMetrics = CellMetrics{Width: 8, Height: 16}

// Point is a position in px.
type Point struct {
	X, Y float64
}

// ToPixels returns the centre of cell (col, row).
func (m CellMetrics) ToPixels(col, row int) Point {
	w, h := m.Width, m.Height
	if w <= 0 {
		w = DefaultCellMetrics.Width
	}
	if h <= 0 {
		h = DefaultCellMetrics.Height
	}
	return Point{X: (float64(col) + 0.5) * w, Y: (float64(row) + 0.5) * h}
}

// Swipe is a completed pointer gesture.
type Swipe struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// WeekOffset returns +1 for a left swipe (next week), -1 for a right swipe
// (previous week) and 0 otherwise. Mostly vertical gestures are scrolls and
// never change the week.
func (s Swipe) WeekOffset() int {
	dx := s.StartX - s.EndX
	dy := s.StartY - s.EndY
	if math.Abs(dy) > math.Abs(dx) {
		return 0
	}
	switch {
	case dx > SwipeThreshold:
		return 1
	case dx < -SwipeThreshold:
		return -1
	default:
		return 0
	}
}

// SwipeTracker turns mouse press/release pairs into Swipes.
type SwipeTracker struct {
	Metrics CellMetrics
	active  bool
	start   Point
}

// Begin records a press at cell (col, row).
func (t *SwipeTracker) Begin(col, row int) {
	t.active = true
	t.start = t.Metrics.ToPixels(col, row)
}

// Active reports whether a press is being tracked.
func (t *SwipeTracker) Active() bool { return t.active }

// Cancel forgets the current press.
func (t *SwipeTracker) Cancel() { t.active = false }

// End completes the gesture at cell (col, row) and returns the week offset.
// Without a matching Begin it returns 0.
func (t *SwipeTracker) End(col, row int) int {
	if !t.active {
		return 0
	}
	t.active = false
	end := t.Metrics.ToPixels(col, row)
	return Swipe{StartX: t.start.X, StartY: t.start.Y, EndX: end.X, EndY: end.Y}.WeekOffset()
}
