// Package delay provides cancellable delayed tasks for the bubbletea event
// loop. A tea.Tick cannot be stopped once scheduled, so each Handle carries a
// sequence number: scheduling or cancelling bumps it, and a firing tick only
// runs when its Token still matches.
package delay

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Token identifies one scheduled firing of a Handle.
type Token struct {
	Name string
	Seq  uint64
}

// Handle is one named delayed task slot. Scheduling again replaces any
// pending firing. The zero value is ready to use.
type Handle struct {
	Name    string
	seq     uint64
	pending bool
}

// New returns a named Handle.
func New(name string) *Handle {
	return &Handle{Name: name}
}

// Schedule invalidates any pending firing and returns the token of a new one.
func (h *Handle) Schedule() Token {
	h.seq++
	h.pending = true
	return Token{Name: h.Name, Seq: h.seq}
}

// Cancel drops the pending firing, if any.
func (h *Handle) Cancel() {
	if h.pending {
		h.seq++
		h.pending = false
	}
}

// Pending reports whether a firing is scheduled and not yet consumed.
func (h *Handle) Pending() bool { return h.pending }

// Fire consumes tok. It reports true only for the most recent, uncancelled
// schedule; stale tokens return false.
func (h *Handle) Fire(tok Token) bool {
	if !h.pending || tok.Name != h.Name || tok.Seq != h.seq {
		return false
	}
	h.pending = false
	return true
}

// FiredMsg is delivered when an After tick elapses.
type FiredMsg struct {
	Token Token
	At    time.Time
}

// After schedules h to fire in d and returns the tick command. The model
// passes the resulting FiredMsg back through Fire.
func (h *Handle) After(d time.Duration) tea.Cmd {
	tok := h.Schedule()
	return tea.Tick(d, func(at time.Time) tea.Msg {
		return FiredMsg{Token: tok, At: at}
	})
}

// Group cancels several handles together on view teardown.
type Group []*Handle

func (g Group) CancelAll() {
	for _, h := range g {
		h.Cancel()
	}
}

// Find returns the handle tok belongs to, or nil.
func (g Group) Find(tok Token) *Handle {
	for _, h := range g {
		if h.Name == tok.Name {
			return h
		}
	}
	return nil
}
