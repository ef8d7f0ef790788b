package cli

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/auth"
	"github.com/alexanderramin/gabelguru/internal/config"
	"github.com/alexanderramin/gabelguru/internal/cooking"
	"github.com/alexanderramin/gabelguru/internal/service"
	"github.com/alexanderramin/gabelguru/internal/teatest"
	"github.com/alexanderramin/gabelguru/internal/testutil"
)

// testNow is Wednesday of the week 2025-03-10 .. 2025-03-16.
var testNow = time.Date(2025, 3, 12, 12, 0, 0, 0, time.Local)

// testApp wires real services against an in-memory fake backend. The
// offline cache is disabled unless a test sets one up itself.
func testApp(t *testing.T) (*App, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t)
	return testAppWithCache(t, backend, nil), backend
}

func testAppWithCache(t *testing.T, backend *testutil.Backend, cache *service.Cache) *App {
	t.Helper()
	client, err := api.New(api.Config{BaseURL: backend.URL(), Timeout: 2 * time.Second}, api.StaticToken("tok"), nil)
	require.NoError(t, err)
	t.Cleanup(client.CloseIdleConnections)

	dir := t.TempDir()
	return &App{
		Weeks:         service.NewWeekPlanService(client, cache),
		Menus:         service.NewMenuService(client),
		Lists:         service.NewListService(client, cache),
		Planning:      service.NewPlanningService(client),
		Recipes:       service.NewRecipeService(client, cache),
		Assistant:     service.NewAssistantService(client),
		Tokens:        auth.NewStore(filepath.Join(dir, "token"), ""),
		Speaker:       cooking.NewSpeaker("", nil),
		Config:        config.Default(dir),
		Log:           zaptest.NewLogger(t),
		Now:           func() time.Time { return testNow },
		IsInteractive: func() bool { return false },
		HistoryPath:   filepath.Join(dir, "history"),
	}
}

// TestDriver wraps teatest.Driver with GabelGuru-specific inspection
// methods. It provides access to appModel internals (view stack, shared
// state, command bar focus) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver

	ticks []func(time.Time) tea.Msg
	bells int
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init(), which
// loads the current week from the fake backend.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	td := &TestDriver{}
	state := newSharedState(app)
	state.Tick = func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		td.ticks = append(td.ticks, fn)
		return nil
	}
	state.Bell = func() { td.bells++ }

	m := newAppModelWithState(state)
	d := teatest.New(t, m,
		teatest.WithCmdTimeout(250*time.Millisecond),
		teatest.WithSize(120, 40))
	d.DrainInit()
	td.Driver = d
	return td
}

// ── High-level helpers ───────────────────────────────────────────────────────

// Command focuses the command bar with ':', types the command, and presses Enter.
// After execution, it blurs the command bar (via Esc) so subsequent key presses
// route to the active view rather than the text input.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

// FireTicks delivers every scheduled tick once, in scheduling order.
func (d *TestDriver) FireTicks() {
	d.T.Helper()
	pending := d.ticks
	d.ticks = nil
	for _, fn := range pending {
		d.Send(fn(testNow))
	}
}

// PendingTicks returns how many ticks are scheduled and not yet fired.
func (d *TestDriver) PendingTicks() int { return len(d.ticks) }

// Bells returns how often the terminal bell rang.
func (d *TestDriver) Bells() int { return d.bells }

// ClickContent clicks a content cell; y is relative to the view below the
// header.
func (d *TestDriver) ClickContent(x, y int) {
	d.T.Helper()
	d.Click(x, y+headerLines)
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

// ActiveView returns the top view on the stack.
func (d *TestDriver) ActiveView() View {
	return d.appModel().activeView()
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	v := d.ActiveView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	return d.appModel().cmdBar.Focused()
}

// LastOutput returns the last command output displayed in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// Alert returns the rendered error panel, or "" when none is raised.
func (d *TestDriver) Alert() string {
	return d.appModel().alert
}

// Week returns the root week view.
func (d *TestDriver) Week() *weekView {
	return d.appModel().viewStack[0].(*weekView)
}
