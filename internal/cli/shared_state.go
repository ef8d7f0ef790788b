package cli

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/appstate"
	"github.com/alexanderramin/gabelguru/internal/delay"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/menuplan"
)

// errServedFromCache marks a sync that fell back to the offline snapshot.
var errServedFromCache = errors.New("backend unreachable, showing cached data")

// headerLines is the height of the header (title + separator). Mouse rows
// are shifted by it before views see them.
const headerLines = 2

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App   *App
	Store *appstate.Store
	Log   *zap.Logger

	// Terminal dimensions
	Width  int
	Height int

	// Cells converts mouse cells to px for gesture thresholds.
	Cells menuplan.CellMetrics

	// Now, Tick and Bell are replaced in tests.
	Now  func() time.Time
	Tick func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd
	Bell func()
}

func newSharedState(app *App) *SharedState {
	log := app.Log
	if log == nil {
		log = zap.NewNop()
	}
	cells := menuplan.CellMetrics{
		Width:  float64(app.Config.UI.CellWidthPx),
		Height: float64(app.Config.UI.CellHeightPx),
	}
	if cells.Width <= 0 || cells.Height <= 0 {
		cells = menuplan.DefaultCellMetrics
	}
	now := app.Now
	if now == nil {
		now = time.Now
	}
	return &SharedState{
		App:   app,
		Store: appstate.NewStore(appstate.Initial(appstate.ParseTheme(app.Config.UI.Theme))),
		Log:   log.Named("tui"),
		Cells: cells,
		Now:   now,
		Tick:  tea.Tick,
		Bell: func() {
			_, _ = os.Stderr.WriteString("\a")
		},
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// ViewportPx returns the terminal width in px.
func (s *SharedState) ViewportPx() float64 {
	return float64(s.Width) * s.Cells.Width
}

// EditMode returns the current global edit mode.
func (s *SharedState) EditMode() domain.EditMode {
	return s.Store.State().EditMode
}

func (s *SharedState) dispatch(a appstate.Action) appstate.State {
	return s.Store.Dispatch(a)
}

// after schedules h to fire in d through the state's Tick.
func (s *SharedState) after(h *delay.Handle, d time.Duration) tea.Cmd {
	tok := h.Schedule()
	return s.Tick(d, func(at time.Time) tea.Msg {
		return delay.FiredMsg{Token: tok, At: at}
	})
}

// bell returns a command that rings the terminal bell once.
func (s *SharedState) bell() tea.Cmd {
	return func() tea.Msg {
		if s.Bell != nil {
			s.Bell()
		}
		return nil
	}
}

// ctx returns the context for backend calls issued from the event loop.
func (s *SharedState) ctx() context.Context {
	return context.Background()
}

// beginSync marks a backend fetch as in flight.
func (s *SharedState) beginSync() {
	s.dispatch(appstate.SyncStarted{})
}

// endSync records the outcome of a fetch started with beginSync.
func (s *SharedState) endSync(offline bool, err error) {
	switch {
	case err != nil:
		s.Log.Warn("fetch failed", zap.Error(err))
		offline := errors.Is(err, api.ErrUnavailable) || errors.Is(err, api.ErrTimeout)
		s.dispatch(appstate.SyncFailed{Err: err, Offline: offline})
	case offline:
		s.dispatch(appstate.SyncFailed{Err: errServedFromCache, Offline: true})
	default:
		s.dispatch(appstate.SyncSucceeded{At: s.Now()})
	}
}

// routeOf maps a view to the route it represents. Modal views keep the
// current route.
func routeOf(v View) (appstate.Route, bool) {
	switch v.ID() {
	case ViewWeek:
		return appstate.RouteWeek, true
	case ViewDashboard:
		return appstate.RouteDashboard, true
	case ViewPlanning:
		return appstate.RoutePlanning, true
	case ViewCooking:
		return appstate.RouteCooking, true
	}
	return "", false
}

// navigateTo dispatches a route change when v is a route view on a different
// route than the current one.
func (s *SharedState) navigateTo(v View) {
	if v == nil {
		return
	}
	route, ok := routeOf(v)
	if !ok || s.Store.State().Route == route {
		return
	}
	s.dispatch(appstate.Navigate{To: route})
}
