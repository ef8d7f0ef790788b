package menuplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwipe_WeekOffset(t *testing.T) {
	tests := []struct {
		name  string
		swipe Swipe
		want  int
	}{
		{"left swipe is next week", Swipe{StartX: 300, StartY: 100, EndX: 200, EndY: 110}, 1},
		{"right swipe is previous week", Swipe{StartX: 100, StartY: 100, EndX: 200, EndY: 90}, -1},
		{"exactly threshold does nothing", Swipe{StartX: 150, EndX: 100}, 0},
		{"short swipe does nothing", Swipe{StartX: 140, EndX: 100}, 0},
		{"vertical scroll ignored", Swipe{StartX: 300, StartY: 0, EndX: 200, EndY: 150}, 0},
		{"diagonal mostly horizontal", Swipe{StartX: 300, StartY: 0, EndX: 200, EndY: 90}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.swipe.WeekOffset())
		})
	}
}

func TestSwipeTracker_CellsToPixels(t *testing.T) {
	tr := SwipeTracker{Metrics: DefaultCellMetrics}

	// 7 columns at 8 px is 56 px of travel.
	tr.Begin(20, 5)
	assert.True(t, tr.Active())
	assert.Equal(t, 1, tr.End(13, 5))
	assert.False(t, tr.Active())

	// 6 columns is 48 px, under the threshold.
	tr.Begin(10, 5)
	assert.Equal(t, 0, tr.End(16, 5))

	// 4 rows is 64 px vertically; beats 7 columns horizontally.
	tr.Begin(20, 5)
	assert.Equal(t, 0, tr.End(13, 9))
}

func TestSwipeTracker_EndWithoutBegin(t *testing.T) {
	var tr SwipeTracker
	assert.Equal(t, 0, tr.End(0, 0))

	tr.Begin(30, 0)
	tr.Cancel()
	assert.Equal(t, 0, tr.End(0, 0))
}
