package cli

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gabelguru/internal/appstate"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/service"
	"github.com/alexanderramin/gabelguru/internal/testutil"
)

func TestTUI_WeekLoadsOnStartup(t *testing.T) {
	app, backend := testApp(t)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealDinner, "Linsensuppe"))

	d := NewTestDriver(t, app)

	assert.Equal(t, ViewWeek, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())

	view := d.View()
	assert.Contains(t, view, "KW 11")
	assert.Contains(t, view, "Linsensuppe")
	assert.NotContains(t, view, "lädt…")
	sync := d.State().Store.State().Sync
	assert.Zero(t, sync.Pending)
	assert.Empty(t, sync.LastError)
	assert.False(t, sync.LastSync.IsZero())
}

func TestTUI_QuitWithQ(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_WeekNavigationKeys(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.SendKey(tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, d.View(), "KW 12")

	d.SendKey(tea.KeyMsg{Type: tea.KeyLeft})
	d.SendKey(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Contains(t, d.View(), "KW 10")

	d.PressKey('t')
	assert.Contains(t, d.View(), "KW 11")
}

func TestTUI_SwipeChangesWeek(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	// 20 columns at 8 px is well past the swipe threshold.
	d.Drag(60, 5, 40, 5)
	assert.Contains(t, d.View(), "KW 12", "left swipe shows the next week")

	d.Drag(40, 5, 60, 5)
	assert.Contains(t, d.View(), "KW 11", "right swipe shows the previous week")

	// Mostly vertical travel is a scroll, not a swipe.
	d.Drag(40, 5, 42, 20)
	assert.Contains(t, d.View(), "KW 11")
}

func TestTUI_StaleWeekResponseIsDropped(t *testing.T) {
	app, backend := testApp(t)
	backend.AddMenus(testutil.NewTestMenu("2025-03-18", domain.MealLunch, "Gulasch"))
	d := NewTestDriver(t, app)

	d.SendKey(tea.KeyMsg{Type: tea.KeyRight})
	require.Contains(t, d.View(), "Gulasch")

	// A late answer for the first week must not replace the shown one.
	d.Send(weekLoadedMsg{seq: 0, data: &service.WeekData{
		Menus: []domain.Menu{testutil.NewTestMenu("2025-03-11", domain.MealLunch, "Veraltet")},
	}})

	view := d.View()
	assert.Contains(t, view, "Gulasch")
	assert.NotContains(t, view, "Veraltet")
}

func TestTUI_FailedWeekLoadKeepsDataAndRaisesSyncError(t *testing.T) {
	app, backend := testApp(t)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealDinner, "Linsensuppe"))
	d := NewTestDriver(t, app)

	backend.FailNext("GET /menus", 1)
	d.Send(refreshViewMsg{})

	assert.Contains(t, d.View(), "Linsensuppe")
	sync := d.State().Store.State().Sync
	assert.NotEmpty(t, sync.LastError)
	assert.False(t, sync.Offline, "a server error is not a connectivity problem")
}

func TestTUI_OfflineWeekServedFromCache(t *testing.T) {
	backend := testutil.NewBackend(t)
	cache := service.NewCache(testutil.NewTestDB(t))
	app := testAppWithCache(t, backend, cache)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealDinner, "Linsensuppe"))

	d := NewTestDriver(t, app)
	require.Contains(t, d.View(), "Linsensuppe")

	backend.FailNext("GET /menus", 1)
	d.Send(refreshViewMsg{})

	view := d.View()
	assert.Contains(t, view, "Linsensuppe")
	assert.Contains(t, view, "offline")
}

func TestTUI_PointerClickTogglesTooltip(t *testing.T) {
	app, backend := testApp(t)
	recipe := testutil.NewTestRecipe("Spaghetti")
	backend.AddRecipes(recipe)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealLunch, "", testutil.WithRecipe(recipe)))
	d := NewTestDriver(t, app)

	// Content rows: header, blank, then Monday..Sunday. Wednesday is row 4.
	d.ClickContent(10, 4)
	require.Equal(t, 2, d.Week().expanded)

	// Breakfast, lunch, dinner, snack follow the day line.
	d.ClickContent(10, 6)
	assert.True(t, d.Week().tooltip.Open())
	assert.Contains(t, d.View(), "Rezept öffnen")

	d.ClickContent(10, 6)
	assert.False(t, d.Week().tooltip.Open())
	assert.Equal(t, ViewWeek, d.ActiveViewID(), "pointer clicks never open cooking mode")
}

func TestTUI_KeyboardOpensCookingForRecipeSlot(t *testing.T) {
	app, backend := testApp(t)
	recipe := testutil.NewTestRecipe("Spaghetti", testutil.WithSteps("Wasser aufsetzen"))
	backend.AddRecipes(recipe)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealLunch, "", testutil.WithRecipe(recipe)))
	d := NewTestDriver(t, app)

	d.PressEnter() // expand today
	d.PressDown()  // breakfast
	d.PressDown()  // lunch
	d.PressEnter()

	assert.Equal(t, ViewCooking, d.ActiveViewID())
	assert.Contains(t, d.View(), "Wasser aufsetzen")

	d.PressEsc()
	assert.Equal(t, ViewWeek, d.ActiveViewID())
}

func TestTUI_CreateModeSelectorSavesEatingOut(t *testing.T) {
	app, backend := testApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	require.Equal(t, domain.ModeCreate, d.State().EditMode())

	d.PressEnter()
	d.PressDown()
	d.PressEnter()
	require.Equal(t, ViewSelector, d.ActiveViewID())

	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.Equal(t, ViewWeek, d.ActiveViewID())
	menus := backend.Menus()
	require.Len(t, menus, 1)
	assert.True(t, menus[0].IsEatingOut)
	assert.Equal(t, "2025-03-12", menus[0].Date)
	assert.Equal(t, domain.MealBreakfast, menus[0].MealType)
}

func TestTUI_SelectorManualEntryUpdatesExistingMenu(t *testing.T) {
	app, backend := testApp(t)
	existing := testutil.NewTestMenu("2025-03-12", domain.MealBreakfast, "Müsli")
	backend.AddMenus(existing)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	d.PressKey('e') // edit
	d.PressEnter()
	d.PressDown()
	d.PressEnter()
	require.Equal(t, ViewSelector, d.ActiveViewID())

	// Blank manual text stays open with an inline error.
	d.SendKey(tea.KeyMsg{Type: tea.KeyTab})
	d.PressEnter()
	assert.Equal(t, ViewSelector, d.ActiveViewID())
	assert.Contains(t, d.View(), "Bitte einen Text eingeben.")

	d.Type("Porridge")
	d.PressEnter()

	assert.Equal(t, ViewWeek, d.ActiveViewID())
	menus := backend.Menus()
	require.Len(t, menus, 1, "an existing slot is updated, never duplicated")
	assert.Equal(t, existing.ID, menus[0].ID)
	assert.Equal(t, "Porridge", menus[0].Description)
	assert.Len(t, backend.CallsTo("PUT", "/menus/"+strconv.FormatInt(existing.ID, 10)), 1)
}

func TestTUI_DeleteModeAsksForConfirmation(t *testing.T) {
	app, backend := testApp(t)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealBreakfast, "Müsli"))
	d := NewTestDriver(t, app)

	d.PressKey('e')
	d.PressKey('e')
	d.PressKey('e')
	require.Equal(t, domain.ModeDelete, d.State().EditMode())

	d.PressEnter()
	d.PressDown()
	d.PressEnter()
	assert.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, ViewWeek, d.ActiveViewID())
	assert.Len(t, backend.Menus(), 1)
	assert.Empty(t, backend.CallsTo("DELETE", "/menus/"+strconv.FormatInt(backend.Menus()[0].ID, 10)))
}

func TestTUI_EscClosesTooltipBeforeLeaving(t *testing.T) {
	app, backend := testApp(t)
	backend.AddMenus(testutil.NewTestMenu("2025-03-12", domain.MealLunch, "Reste"))
	d := NewTestDriver(t, app)

	d.Command("calendar")
	require.Equal(t, []ViewID{ViewWeek, ViewDashboard}, d.ViewStackIDs())
	d.PressEsc()
	require.Equal(t, ViewWeek, d.ActiveViewID())

	d.ClickContent(10, 4)
	d.ClickContent(10, 6)
	require.True(t, d.Week().tooltip.Open())

	d.PressEsc()
	assert.False(t, d.Week().tooltip.Open())
	assert.Equal(t, 2, d.Week().expanded)

	d.PressEsc()
	assert.Equal(t, -1, d.Week().expanded)
	assert.Equal(t, 1, d.ViewStackLen())
}

func TestTUI_CommandBarFocusBlur(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	assert.False(t, d.CmdBarFocused())
	d.PressKey(':')
	assert.True(t, d.CmdBarFocused())

	// 'q' goes into the text input while focused.
	d.PressKey('q')
	assert.False(t, d.IsQuitting())

	d.PressEsc()
	assert.False(t, d.CmdBarFocused())
}

func TestTUI_CommandsChangeModeAndTheme(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Command("mode delete")
	assert.Equal(t, domain.ModeDelete, d.State().EditMode())

	d.Command("theme light")
	assert.Equal(t, appstate.ThemeLight, d.State().Store.State().Theme)

	d.PressKey('T')
	assert.Equal(t, appstate.ThemeDark, d.State().Store.State().Theme)
}

func TestTUI_WeekCommandJumpsFromNestedView(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Command("calendar")
	require.Equal(t, ViewDashboard, d.ActiveViewID())

	d.Command("week 2025-04-02")

	assert.Equal(t, []ViewID{ViewWeek}, d.ViewStackIDs())
	assert.Contains(t, d.View(), "KW 14")
}

func TestTUI_HelpAndExitCommands(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Command("help")
	assert.Contains(t, d.LastOutput(), "week")

	d.Command("exit")
	assert.True(t, d.IsQuitting())
}

func TestTUI_AlertBlocksUntilDismissed(t *testing.T) {
	app, backend := testApp(t)
	d := NewTestDriver(t, app)

	backend.FailNext("POST /menus", 1)
	d.Send(mealSelectedMsg{date: "2025-03-12", meal: domain.MealDinner, sel: domain.MenuSelection{Description: "Pizza"}})

	require.NotEmpty(t, d.Alert())
	assert.Contains(t, d.View(), "Speichern fehlgeschlagen")

	d.PressKey('q')
	assert.False(t, d.IsQuitting(), "keys are swallowed while the alert is up")

	d.PressEnter()
	assert.Empty(t, d.Alert())
}

func TestTUI_WindowResizePropagation(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, 120, d.State().Width)
	assert.Equal(t, 40, d.State().Height)

	d.Send(tea.WindowSizeMsg{Width: 200, Height: 60})

	assert.Equal(t, 200, d.State().Width)
	assert.Equal(t, 60, d.State().Height)
}
