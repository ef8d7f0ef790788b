package dragdrop

import (
	"math"
	"time"

	"github.com/alexanderramin/gabelguru/internal/delay"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/menuplan"
)

const (
	// LongPressDelay is how long a press must be held to pick up a list.
	LongPressDelay = 500 * time.Millisecond
	// MoveTolerance is the travel in px that cancels a pending long press.
	MoveTolerance = 10.0
)

// Source distinguishes the pointer path from the keyboard path. A drag
// started by one source ignores events from the other.
type Source int

const (
	SourceNone Source = iota
	SourceMouse
	SourceKeyboard
)

type phase int

const (
	idle phase = iota
	pressing
	dragging
)

// Tracker is the drag state machine.
type Tracker struct {
	longPress delay.Handle
	phase     phase
	source    Source
	origin    string
	listID    int64
	start     menuplan.Point
	cursor    menuplan.Point
	// target is the keyboard path's highlighted day.
	target string
}

// NewTracker returns an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{longPress: delay.Handle{Name: "longpress"}}
}

// Dragging reports whether a list is picked up.
func (t *Tracker) Dragging() bool { return t.phase == dragging }

// Pressing reports whether a long press is pending.
func (t *Tracker) Pressing() bool { return t.phase == pressing }

// Source returns the path that owns the current gesture.
func (t *Tracker) Source() Source { return t.source }

// Origin returns the day the dragged list came from.
func (t *Tracker) Origin() string { return t.origin }

// ListID returns the dragged list.
func (t *Tracker) ListID() int64 { return t.listID }

// Cursor returns the last pointer position during a mouse drag.
func (t *Tracker) Cursor() menuplan.Point { return t.cursor }

// KeyTarget returns the keyboard path's current target day.
func (t *Tracker) KeyTarget() string { return t.target }

// Press starts a mouse long press on date. Days without a list never start
// a drag. The returned token must be passed to LongPressElapsed once
// LongPressDelay has passed.
func (t *Tracker) Press(date string, list *domain.List, p menuplan.Point) (delay.Token, bool) {
	if t.phase != idle || list == nil {
		return delay.Token{}, false
	}
	t.phase = pressing
	t.source = SourceMouse
	t.origin = date
	t.listID = list.ID
	t.start = p
	t.cursor = p
	return t.longPress.Schedule(), true
}

// LongPressElapsed promotes a pending press into a drag. It returns true
// exactly once per drag, which is when haptic feedback fires.
func (t *Tracker) LongPressElapsed(tok delay.Token) bool {
	if t.phase != pressing || !t.longPress.Fire(tok) {
		return false
	}
	t.phase = dragging
	return true
}

// Move handles pointer motion. Travel beyond MoveTolerance before the long
// press fires cancels it.
func (t *Tracker) Move(src Source, p menuplan.Point) {
	if src != t.source {
		return
	}
	switch t.phase {
	case pressing:
		if math.Hypot(p.X-t.start.X, p.Y-t.start.Y) > MoveTolerance {
			t.Cancel()
		}
	case dragging:
		t.cursor = p
	}
}

// Release ends a mouse gesture at p. A press released before the long press
// fired is a plain click and resolves to a no-op.
func (t *Tracker) Release(src Source, p menuplan.Point, layout *Layout, lists []domain.List) Drop {
	if src != t.source || src != SourceMouse {
		return Drop{Kind: KindNoop}
	}
	defer t.Cancel()
	if t.phase != dragging {
		return Drop{Kind: KindNoop}
	}
	date, hit := layout.HitTest(p)
	return Resolve(t.origin, t.listID, date, hit, lists)
}

// PickUp starts a keyboard drag of the list on date.
func (t *Tracker) PickUp(date string, list *domain.List) bool {
	if t.phase != idle || list == nil {
		return false
	}
	t.phase = dragging
	t.source = SourceKeyboard
	t.origin = date
	t.listID = list.ID
	t.target = date
	return true
}

// MoveTarget sets the keyboard path's target day.
func (t *Tracker) MoveTarget(src Source, date string) {
	if src != t.source || t.phase != dragging {
		return
	}
	t.target = date
}

// DropAtTarget ends a keyboard drag on the current target day.
func (t *Tracker) DropAtTarget(src Source, lists []domain.List) Drop {
	if src != t.source || src != SourceKeyboard || t.phase != dragging {
		return Drop{Kind: KindNoop}
	}
	defer t.Cancel()
	return Resolve(t.origin, t.listID, t.target, t.target != "", lists)
}

// Cancel abandons any gesture and invalidates a pending long press.
func (t *Tracker) Cancel() {
	t.longPress.Cancel()
	t.phase = idle
	t.source = SourceNone
	t.origin, t.target = "", ""
	t.listID = 0
}
