// Package menuplan is the weekly meal-plan core: week navigation, swipe
// detection, the day/slot grid, slot-click dispatch and tooltip state.
// Nothing here performs I/O; views call services and feed results back.
package menuplan

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/calendar"
)

// WeekNav tracks the displayed week. Start is always a Monday at midnight.
type WeekNav struct {
	Start     time.Time
	Direction int
	Seq       uint64
}

// NewWeekNav starts on the week containing now.
func NewWeekNav(now time.Time) WeekNav {
	return WeekNav{Start: calendar.WeekStart(now)}
}

// Range returns Monday..Sunday of the displayed week.
func (n WeekNav) Range() calendar.Range {
	return calendar.WeekRange(n.Start)
}

// ChangeWeek moves by offset weeks and returns the new range. Every change
// bumps Seq so responses for earlier weeks can be discarded.
func (n *WeekNav) ChangeWeek(offset int) calendar.Range {
	n.Direction = sign(offset)
	n.Start = calendar.AddWeeks(n.Start, offset)
	n.Seq++
	return n.Range()
}

// JumpTo shows the week containing t.
func (n *WeekNav) JumpTo(t time.Time) calendar.Range {
	target := calendar.WeekStart(t)
	n.Direction = 0
	switch {
	case target.After(n.Start):
		n.Direction = 1
	case target.Before(n.Start):
		n.Direction = -1
	}
	n.Start = target
	n.Seq++
	return n.Range()
}

// Accept reports whether a response issued at seq is still current.
func (n WeekNav) Accept(seq uint64) bool {
	return seq == n.Seq
}

// KW returns the ISO week number of the displayed week.
func (n WeekNav) KW() int {
	return calendar.KW(n.Start)
}

// Label formats the header, e.g. "KW 11 · 10.03. – 16.03.2025".
func (n WeekNav) Label() string {
	r := n.Range()
	return fmt.Sprintf("KW %d · %s – %s", n.KW(), r.Start.Format("02.01."), r.End.Format("02.01.2006"))
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
