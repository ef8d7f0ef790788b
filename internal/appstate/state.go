// Package appstate holds the application-wide UI state: edit mode, theme,
// sync status, signed-in user and current route. State changes only through
// Reduce so every transition is a plain function of (State, Action).
package appstate

import (
	"time"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

type Route string

const (
	RouteWeek      Route = "week"
	RouteDashboard Route = "dashboard"
	RouteCooking   Route = "cooking"
	RoutePlanning  Route = "planning"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps a config value to a Theme, defaulting to dark.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

// Sync is the display-only connectivity status.
type Sync struct {
	Pending   int
	Offline   bool
	LastError string
	LastSync  time.Time
}

// User is the signed-in identity shown in the header.
type User struct {
	Name      string
	ExpiresAt time.Time
}

type State struct {
	EditMode domain.EditMode
	Theme    Theme
	Sync     Sync
	User     *User
	Route    Route
}

// Initial returns the state at startup.
func Initial(theme Theme) State {
	return State{
		EditMode: domain.ModeView,
		Theme:    theme,
		Route:    RouteWeek,
	}
}
