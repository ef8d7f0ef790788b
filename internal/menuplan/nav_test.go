package menuplan

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekNav_AlwaysMonday(t *testing.T) {
	nav := NewWeekNav(time.Date(2025, time.March, 13, 18, 45, 0, 0, time.Local))
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		offset := rng.Intn(21) - 10
		r := nav.ChangeWeek(offset)
		assert.Equal(t, time.Monday, nav.Start.Weekday())
		assert.Equal(t, time.Sunday, r.End.Weekday())
		assert.Equal(t, 6, int(r.End.Sub(r.Start).Hours()/24+0.5))
	}
}

func TestWeekNav_ChangeWeekDirectionAndSeq(t *testing.T) {
	nav := NewWeekNav(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local))

	r := nav.ChangeWeek(1)
	assert.Equal(t, "2025-03-17", r.StartKey())
	assert.Equal(t, "2025-03-23", r.EndKey())
	assert.Equal(t, 1, nav.Direction)
	assert.Equal(t, uint64(1), nav.Seq)

	nav.ChangeWeek(-2)
	assert.Equal(t, -1, nav.Direction)
	assert.Equal(t, "2025-03-03", nav.Range().StartKey())
	assert.Equal(t, uint64(2), nav.Seq)
}

func TestWeekNav_StaleResponseRejected(t *testing.T) {
	nav := NewWeekNav(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local))
	nav.ChangeWeek(1)
	issued := nav.Seq
	nav.ChangeWeek(1)

	assert.False(t, nav.Accept(issued))
	assert.True(t, nav.Accept(nav.Seq))
}

func TestWeekNav_JumpTo(t *testing.T) {
	nav := NewWeekNav(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.Local))
	nav.ChangeWeek(3)

	r := nav.JumpTo(time.Date(2025, time.March, 16, 23, 0, 0, 0, time.Local))
	assert.Equal(t, "2025-03-10", r.StartKey())
	assert.Equal(t, -1, nav.Direction)
}

func TestWeekNav_Label(t *testing.T) {
	nav := NewWeekNav(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.Local))
	assert.Equal(t, 1, nav.KW())
	assert.Equal(t, "KW 1 · 30.12. – 05.01.2025", nav.Label())
}
