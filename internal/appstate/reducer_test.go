package appstate

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce_NavigateResetsEditMode(t *testing.T) {
	for _, mode := range domain.EditModes {
		s := Initial(ThemeDark)
		s = Reduce(s, SetEditMode{Mode: mode})
		require.Equal(t, mode, s.EditMode)

		s = Reduce(s, Navigate{To: RouteDashboard})
		assert.Equal(t, domain.ModeView, s.EditMode, "from %s", mode)
		assert.Equal(t, RouteDashboard, s.Route)
	}
}

func TestReduce_IsPure(t *testing.T) {
	s := Initial(ThemeDark)
	s.User = &User{Name: "anna"}
	before := s

	next := Reduce(s, SetUser{User: &User{Name: "ben"}})
	assert.Equal(t, "anna", s.User.Name)
	assert.Equal(t, before, s)
	assert.Equal(t, "ben", next.User.Name)
}

func TestReduce_CycleEditMode(t *testing.T) {
	s := Initial(ThemeDark)
	var seen []domain.EditMode
	for range domain.EditModes {
		s = Reduce(s, CycleEditMode{})
		seen = append(seen, s.EditMode)
	}
	assert.Equal(t, []domain.EditMode{domain.ModeCreate, domain.ModeEdit, domain.ModeDelete, domain.ModeView}, seen)
}

func TestReduce_SyncLifecycle(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	s := Initial(ThemeDark)

	s = Reduce(s, SyncStarted{})
	s = Reduce(s, SyncStarted{})
	assert.Equal(t, 2, s.Sync.Pending)

	s = Reduce(s, SyncFailed{Err: errors.New("backend unavailable"), Offline: true})
	assert.Equal(t, 1, s.Sync.Pending)
	assert.True(t, s.Sync.Offline)
	assert.Equal(t, "backend unavailable", s.Sync.LastError)

	s = Reduce(s, SyncSucceeded{At: at})
	assert.Equal(t, Sync{LastSync: at}, s.Sync)

	s = Reduce(s, SyncSucceeded{At: at})
	assert.Zero(t, s.Sync.Pending, "pending never goes negative")
}

func TestReduce_Theme(t *testing.T) {
	s := Initial(ParseTheme("light"))
	assert.Equal(t, ThemeLight, s.Theme)
	s = Reduce(s, ToggleTheme{})
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Equal(t, ThemeDark, ParseTheme("neon"))
}
