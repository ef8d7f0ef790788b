package cooking

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TickInterval is the period of the shared timer tick. Alarms ring once per
// tick.
const TickInterval = time.Second

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrTimerNotFound   = errors.New("timer not found")
)

// Timer is one countdown.
type Timer struct {
	ID        string
	Label     string
	Total     time.Duration
	Remaining time.Duration
	Running   bool
	// Alarming is set when the countdown reaches zero and stays set until
	// the alarm is dismissed or the timer deleted.
	Alarming bool
}

// Done reports whether the countdown has reached zero.
func (t *Timer) Done() bool { return t.Remaining <= 0 }

// Clock renders the remaining time as m:ss or h:mm:ss.
func (t *Timer) Clock() string {
	return FormatClock(t.Remaining)
}

func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(math.Ceil(d.Seconds()))
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Timers is the set of independent countdowns of a cooking session, in
// creation order.
type Timers struct {
	list []*Timer
}

// Add starts a new running timer.
func (ts *Timers) Add(label string, d time.Duration) (*Timer, error) {
	if d <= 0 {
		return nil, ErrInvalidDuration
	}
	if strings.TrimSpace(label) == "" {
		label = FormatClock(d)
	}
	t := &Timer{
		ID:        uuid.NewString(),
		Label:     strings.TrimSpace(label),
		Total:     d,
		Remaining: d,
		Running:   true,
	}
	ts.list = append(ts.list, t)
	return t, nil
}

// All returns the timers in creation order.
func (ts *Timers) All() []*Timer { return ts.list }

func (ts *Timers) Len() int { return len(ts.list) }

// Get returns the timer with id.
func (ts *Timers) Get(id string) (*Timer, error) {
	for _, t := range ts.list {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("timer %s: %w", id, ErrTimerNotFound)
}

// Pause stops the countdown of id.
func (ts *Timers) Pause(id string) error {
	t, err := ts.Get(id)
	if err != nil {
		return err
	}
	t.Running = false
	return nil
}

// Resume continues a paused countdown. Finished timers stay stopped.
func (ts *Timers) Resume(id string) error {
	t, err := ts.Get(id)
	if err != nil {
		return err
	}
	if !t.Done() {
		t.Running = true
	}
	return nil
}

// Toggle pauses a running timer or resumes a paused one.
func (ts *Timers) Toggle(id string) error {
	t, err := ts.Get(id)
	if err != nil {
		return err
	}
	if t.Running {
		return ts.Pause(id)
	}
	return ts.Resume(id)
}

// Delete removes a timer together with its alarm.
func (ts *Timers) Delete(id string) error {
	for i, t := range ts.list {
		if t.ID == id {
			t.Running, t.Alarming = false, false
			ts.list = append(ts.list[:i], ts.list[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("timer %s: %w", id, ErrTimerNotFound)
}

// Dismiss silences the alarm of id.
func (ts *Timers) Dismiss(id string) error {
	t, err := ts.Get(id)
	if err != nil {
		return err
	}
	t.Alarming = false
	return nil
}

// DismissAll silences every alarm.
func (ts *Timers) DismissAll() {
	for _, t := range ts.list {
		t.Alarming = false
	}
}

// Clear deletes all timers.
func (ts *Timers) Clear() {
	for _, t := range ts.list {
		t.Running, t.Alarming = false, false
	}
	ts.list = nil
}

// Tick advances every running timer by elapsed. It returns the timers that
// finished during this tick and whether any alarm is ringing afterwards.
func (ts *Timers) Tick(elapsed time.Duration) (finished []*Timer, ringing bool) {
	for _, t := range ts.list {
		if t.Running {
			t.Remaining -= elapsed
			if t.Remaining <= 0 {
				t.Remaining = 0
				t.Running = false
				t.Alarming = true
				finished = append(finished, t)
			}
		}
		if t.Alarming {
			ringing = true
		}
	}
	return finished, ringing
}

// Ringing reports whether any alarm is active.
func (ts *Timers) Ringing() bool {
	for _, t := range ts.list {
		if t.Alarming {
			return true
		}
	}
	return false
}

// NeedsTick reports whether the shared tick must keep running.
func (ts *Timers) NeedsTick() bool {
	for _, t := range ts.list {
		if t.Running || t.Alarming {
			return true
		}
	}
	return false
}

var durationPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(stunden|stunde|std\.?|hours?|hrs?|h|minuten|minute|min\.?|minutes?|mins?|sekunden|sekunde|sek\.?|seconds?|secs?|s)\b`)

// ParseDuration extracts the first duration mentioned in step text, e.g.
// "10 Minuten köcheln lassen", "1,5 Std." or "30 sec".
func ParseDuration(text string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	unit := strings.TrimSuffix(strings.ToLower(m[2]), ".")
	var base time.Duration
	switch {
	case strings.HasPrefix(unit, "st") || strings.HasPrefix(unit, "h"):
		base = time.Hour
	case strings.HasPrefix(unit, "m"):
		base = time.Minute
	default:
		base = time.Second
	}
	return time.Duration(n * float64(base)), true
}
