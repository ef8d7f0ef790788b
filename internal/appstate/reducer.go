package appstate

import (
	"time"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

// Action is a state transition request. Each concrete action type is handled
// by Reduce.
type Action interface {
	action()
}

type SetEditMode struct{ Mode domain.EditMode }

// CycleEditMode advances to the next mode of the switcher.
type CycleEditMode struct{}

// Navigate changes the route. Edit mode always resets to view.
type Navigate struct{ To Route }

type SetTheme struct{ Theme Theme }

type ToggleTheme struct{}

// SyncStarted marks one request in flight.
type SyncStarted struct{}

type SyncSucceeded struct{ At time.Time }

// SyncFailed ends a request with an error. Offline means stale cached data is
// being shown.
type SyncFailed struct {
	Err     error
	Offline bool
}

type SetUser struct{ User *User }

func (SetEditMode) action()   {}
func (CycleEditMode) action() {}
func (Navigate) action()      {}
func (SetTheme) action()      {}
func (ToggleTheme) action()   {}
func (SyncStarted) action()   {}
func (SyncSucceeded) action() {}
func (SyncFailed) action()    {}
func (SetUser) action()       {}

// Reduce returns the state after applying a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetEditMode:
		if a.Mode == "" {
			a.Mode = domain.ModeView
		}
		s.EditMode = a.Mode
	case CycleEditMode:
		s.EditMode = s.EditMode.Next()
	case Navigate:
		s.Route = a.To
		s.EditMode = domain.ModeView
	case SetTheme:
		s.Theme = a.Theme
	case ToggleTheme:
		if s.Theme == ThemeLight {
			s.Theme = ThemeDark
		} else {
			s.Theme = ThemeLight
		}
	case SyncStarted:
		s.Sync.Pending++
	case SyncSucceeded:
		s.Sync = Sync{
			Pending:  decPending(s.Sync.Pending),
			LastSync: a.At,
		}
	case SyncFailed:
		s.Sync.Pending = decPending(s.Sync.Pending)
		s.Sync.Offline = a.Offline
		s.Sync.LastError = ""
		if a.Err != nil {
			s.Sync.LastError = a.Err.Error()
		}
	case SetUser:
		if a.User != nil {
			u := *a.User
			s.User = &u
		} else {
			s.User = nil
		}
	}
	return s
}

func decPending(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
