package cli

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/testutil"
)

func openCooking(t *testing.T, d *TestDriver, recipe *domain.Recipe) *cookingView {
	t.Helper()
	d.Command(fmt.Sprintf("cook %d", recipe.ID))
	require.Equal(t, ViewCooking, d.ActiveViewID())
	cv, ok := d.ActiveView().(*cookingView)
	require.True(t, ok)
	require.NotNil(t, cv.session, "recipe loaded")
	return cv
}

func eggRecipe() *domain.Recipe {
	return testutil.NewTestRecipe("Frühstücksei",
		testutil.WithSteps("Ei 2 Sekunden ziehen lassen", "Mit Salz servieren"),
		testutil.WithIngredient(testutil.NewTestProduct("Ei", "Stück"), 2, "Stück"))
}

func TestCooking_StepNavigation(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	assert.Equal(t, 0, cv.session.Step())
	d.PressKey('n')
	assert.Equal(t, 1, cv.session.Step())
	assert.Contains(t, cv.session.CurrentStep(), "Salz")
	d.PressKey('b')
	assert.Equal(t, 0, cv.session.Step())
}

func TestCooking_TimerFromStepRingsUntilDismissed(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	d.PressKey('t')
	require.Equal(t, 1, cv.timers.Len())
	timer := cv.timers.All()[0]
	assert.Equal(t, "Schritt 1", timer.Label)
	assert.Equal(t, 2*time.Second, timer.Remaining)
	assert.Equal(t, 1, d.PendingTicks(), "one shared tick for all timers")

	d.FireTicks()
	assert.Zero(t, d.Bells())
	d.FireTicks()
	assert.True(t, timer.Alarming)
	assert.Equal(t, 1, d.Bells())
	d.FireTicks()
	assert.Equal(t, 2, d.Bells(), "alarm repeats until dismissed")

	d.PressEsc()
	assert.False(t, cv.timers.Ringing())
	assert.Equal(t, ViewCooking, d.ActiveViewID(), "esc silences the alarm first")

	d.FireTicks()
	assert.Zero(t, d.PendingTicks(), "tick stops once nothing runs")
	assert.Equal(t, 2, d.Bells())
}

func TestCooking_SecondTimerSharesTick(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	d.PressKey('t')
	d.PressKey('t')

	assert.Equal(t, 2, cv.timers.Len())
	assert.Equal(t, 1, d.PendingTicks())
}

func TestCooking_PausedTimerStopsTicking(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	d.PressKey('t')
	d.PressKey('p')
	require.False(t, cv.timers.All()[0].Running)

	d.FireTicks()
	assert.Zero(t, d.PendingTicks())
	assert.Equal(t, 2*time.Second, cv.timers.All()[0].Remaining)

	d.PressKey('p')
	assert.Equal(t, 1, d.PendingTicks(), "resuming restarts the tick")
}

func TestCooking_StepWithoutDurationAsksForTimer(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	d := NewTestDriver(t, app)
	openCooking(t, d, recipe)

	d.PressKey('n')
	d.PressKey('t')
	assert.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, ViewCooking, d.ActiveViewID())
}

func TestCooking_LeavingStopsTimers(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	d.PressKey('t')
	d.PressEsc()

	assert.Equal(t, ViewWeek, d.ActiveViewID())
	assert.Zero(t, cv.timers.Len())
	d.FireTicks()
	assert.Zero(t, d.PendingTicks(), "stale tick is ignored after teardown")
}

func TestCooking_AssistantAnswersQuestion(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	backend.SetChatReply("Etwa **6 Minuten** für ein weiches Ei.")
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	d.PressKey('a')
	require.True(t, cv.chatting)

	// Keys go to the chat field, so q does not quit.
	d.Type("quanto? wie lange kocht ein Ei")
	assert.False(t, d.IsQuitting())
	d.PressEnter()

	require.Len(t, backend.CallsTo("POST", "/ai/chat"), 1)
	reply, ok := cv.conv.LastReply()
	require.True(t, ok)
	assert.Equal(t, "Etwa **6 Minuten** für ein weiches Ei.", reply)

	d.PressEsc()
	assert.False(t, cv.chatting)
	assert.Equal(t, ViewCooking, d.ActiveViewID())

	d.PressKey('c')
	_, ok = cv.conv.LastReply()
	assert.False(t, ok)
}

func TestCooking_AssistantFailureIsShownInChat(t *testing.T) {
	app, backend := testApp(t)
	recipe := eggRecipe()
	backend.AddRecipes(recipe)
	backend.FailNext("POST /ai/chat", 1)
	d := NewTestDriver(t, app)
	cv := openCooking(t, d, recipe)

	d.PressKey('a')
	d.Type("Salz?")
	d.PressEnter()

	assert.Error(t, cv.conv.Err())
	assert.False(t, cv.conv.Pending())
	assert.Empty(t, d.Alert(), "chat errors stay inline")
}

func TestCooking_UnknownRecipeShowsError(t *testing.T) {
	app, _ := testApp(t)
	d := NewTestDriver(t, app)

	d.Command("cook 424242")

	require.Equal(t, ViewCooking, d.ActiveViewID())
	cv := d.ActiveView().(*cookingView)
	assert.Nil(t, cv.session)
	assert.Error(t, cv.err)
}
