package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/cooking"
	"github.com/alexanderramin/gabelguru/internal/delay"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// ── messages ─────────────────────────────────────────────────────────────────

type recipeLoadedMsg struct {
	recipe *domain.Recipe
	err    error
}

type assistantReplyMsg struct {
	reply string
	err   error
}

type cookingPane int

const (
	paneSteps cookingPane = iota
	paneIngredients
	paneTimers
)

// cookingView is the step-by-step cooking mode for one recipe with
// countdown timers and an assistant chat.
type cookingView struct {
	state    *SharedState
	recipeID int64

	session *cooking.Session
	loading bool
	err     error

	pane       cookingPane
	ingCursor  int
	timerIndex int

	timers cooking.Timers
	tick   delay.Handle

	conv     cooking.Conversation
	input    textinput.Model
	chatting bool
	renderer *cooking.Renderer
}

func newCookingView(state *SharedState, recipeID int64) *cookingView {
	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "Frag den Assistenten"
	ti.CharLimit = 500
	return &cookingView{
		state:    state,
		recipeID: recipeID,
		loading:  true,
		input:    ti,
		tick:     delay.Handle{Name: "cooking-timers"},
	}
}

func (v *cookingView) ID() ViewID { return ViewCooking }

func (v *cookingView) Title() string {
	if v.session != nil && v.session.Recipe != nil {
		return formatter.Truncate(v.session.Recipe.Title, 24)
	}
	return "Kochen"
}

func (v *cookingView) ShortHelp() []key.Binding {
	if v.chatting {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "fragen")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "fertig")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("right", "left"), key.WithHelp("←/→", "Schritt")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Bereich")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t/+", "Timer")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Assistent")),
		key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vorlesen")),
	}
}

// CapturesInput is true while the chat field is focused.
func (v *cookingView) CapturesInput() bool { return v.chatting }

// ConsumesEsc silences ringing alarms before esc leaves the view.
func (v *cookingView) ConsumesEsc() bool { return v.timers.Ringing() }

// Teardown stops the timer tick and any playback.
func (v *cookingView) Teardown() {
	v.tick.Cancel()
	v.timers.Clear()
	if v.state.App.Speaker != nil {
		v.state.App.Speaker.Stop()
	}
}

func (v *cookingView) Init() tea.Cmd {
	app := v.state.App
	state := v.state
	id := v.recipeID
	return func() tea.Msg {
		r, err := app.Recipes.Get(state.ctx(), id)
		return recipeLoadedMsg{recipe: r, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *cookingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recipeLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("recipe load failed", zap.Int64("recipe_id", v.recipeID), zap.Error(msg.err))
			return v, nil
		}
		v.session = cooking.NewSession(msg.recipe)
		return v, nil

	case delay.FiredMsg:
		if !v.tick.Fire(msg.Token) {
			return v, nil
		}
		return v, v.onTick()

	case assistantReplyMsg:
		if msg.err != nil {
			v.conv.Fail(msg.err)
			v.state.Log.Warn("assistant failed", zap.Error(msg.err))
			return v, nil
		}
		v.conv.Answer(msg.reply)
		return v, nil

	case tea.WindowSizeMsg:
		if v.renderer != nil {
			if err := v.renderer.Resize(v.chatWidth()); err != nil {
				v.state.Log.Debug("markdown resize failed", zap.Error(err))
			}
		}
		return v, nil

	case tea.KeyMsg:
		if v.chatting {
			return v, v.handleChatKey(msg)
		}
		return v, v.handleKey(msg)
	}

	if v.chatting {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

// onTick advances all timers by one interval, rings while any alarm is
// active, and keeps ticking only while something is running or ringing.
func (v *cookingView) onTick() tea.Cmd {
	finished, ringing := v.timers.Tick(cooking.TickInterval)
	var cmds []tea.Cmd
	for _, t := range finished {
		v.state.Log.Info("timer finished", zap.String("label", t.Label))
	}
	if ringing {
		cmds = append(cmds, v.state.bell())
	}
	if v.timers.NeedsTick() {
		cmds = append(cmds, v.state.after(&v.tick, cooking.TickInterval))
	}
	return tea.Batch(cmds...)
}

// ensureTick starts the shared tick unless one is already pending.
func (v *cookingView) ensureTick() tea.Cmd {
	if v.tick.Pending() || !v.timers.NeedsTick() {
		return nil
	}
	return v.state.after(&v.tick, cooking.TickInterval)
}

func (v *cookingView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.session == nil {
		return nil
	}
	switch msg.String() {
	case "esc":
		v.timers.DismissAll()
	case "right", "l", "n":
		v.session.Next()
	case "left", "h", "b":
		v.session.Prev()
	case "tab":
		v.pane = (v.pane + 1) % 3
	case "shift+tab":
		v.pane = (v.pane + 2) % 3
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case " ", "enter":
		return v.activate()
	case "t":
		return v.timerFromStep()
	case "+":
		return v.newTimer("")
	case "p":
		if t := v.selectedTimer(); t != nil {
			_ = v.timers.Toggle(t.ID)
			return v.ensureTick()
		}
	case "x", "delete":
		if t := v.selectedTimer(); t != nil {
			_ = v.timers.Delete(t.ID)
			v.timerIndex = min(v.timerIndex, max(0, v.timers.Len()-1))
		}
	case "s":
		v.timers.DismissAll()
	case "a", "/":
		v.chatting = true
		return v.input.Focus()
	case "v":
		return v.speakLastReply()
	case "c":
		v.conv.Reset()
	}
	return nil
}

func (v *cookingView) moveCursor(delta int) {
	switch v.pane {
	case paneIngredients:
		n := len(v.session.Ingredients())
		v.ingCursor = max(0, min(n-1, v.ingCursor+delta))
	case paneTimers:
		v.timerIndex = max(0, min(v.timers.Len()-1, v.timerIndex+delta))
	default:
		if delta > 0 {
			v.session.Next()
		} else {
			v.session.Prev()
		}
	}
}

// activate toggles the focused ingredient, or silences or pauses the
// focused timer.
func (v *cookingView) activate() tea.Cmd {
	switch v.pane {
	case paneIngredients:
		v.session.ToggleIngredient(v.ingCursor)
	case paneTimers:
		t := v.selectedTimer()
		if t == nil {
			return nil
		}
		if t.Alarming {
			_ = v.timers.Dismiss(t.ID)
			return nil
		}
		_ = v.timers.Toggle(t.ID)
		return v.ensureTick()
	default:
		v.session.Next()
	}
	return nil
}

func (v *cookingView) selectedTimer() *cooking.Timer {
	all := v.timers.All()
	if v.timerIndex < 0 || v.timerIndex >= len(all) {
		return nil
	}
	return all[v.timerIndex]
}

// timerFromStep starts a timer for the duration named in the current step,
// or asks for one when the step names none.
func (v *cookingView) timerFromStep() tea.Cmd {
	step := v.session.CurrentStep()
	d, ok := cooking.ParseDuration(step)
	if !ok {
		return v.newTimer("")
	}
	label := fmt.Sprintf("Schritt %d", v.session.Step()+1)
	return v.addTimer(label, d)
}

func (v *cookingView) addTimer(label string, d time.Duration) tea.Cmd {
	if _, err := v.timers.Add(label, d); err != nil {
		return alertCmd("Timer nicht gestartet", err)
	}
	v.pane = paneTimers
	v.timerIndex = v.timers.Len() - 1
	return v.ensureTick()
}

func (v *cookingView) newTimer(label string) tea.Cmd {
	duration := ""
	form := wizardNewTimer(&label, &duration)
	return startWizardCmd(v.state, "Neuer Timer", form, func() tea.Cmd {
		d, ok := cooking.ParseDuration(duration)
		if !ok {
			return alertCmd("Timer nicht gestartet", cooking.ErrInvalidDuration)
		}
		return v.addTimer(label, d)
	})
}

// ── assistant ────────────────────────────────────────────────────────────────

func (v *cookingView) handleChatKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.chatting = false
		v.input.Blur()
		return nil
	case tea.KeyEnter:
		return v.ask(v.input.Value())
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *cookingView) ask(question string) tea.Cmd {
	if v.state.App.Assistant == nil {
		return alertCmd("Assistent nicht verfügbar", fmt.Errorf("no assistant configured"))
	}
	history, err := v.conv.Ask(question)
	if err != nil {
		return nil
	}
	v.input.Reset()
	app := v.state.App
	state := v.state
	contextText := v.session.ContextText()
	return func() tea.Msg {
		reply, err := app.Assistant.Ask(state.ctx(), history, contextText)
		return assistantReplyMsg{reply: reply, err: err}
	}
}

// speakLastReply plays the latest assistant answer through the configured
// player.
func (v *cookingView) speakLastReply() tea.Cmd {
	reply, ok := v.conv.LastReply()
	speaker := v.state.App.Speaker
	if !ok || speaker == nil || v.state.App.Assistant == nil {
		return nil
	}
	if !speaker.Enabled() {
		return outputCmd(formatter.Dim("Kein Audio-Player konfiguriert (audio.player)."))
	}
	if err := speaker.Play(v.state.App.Assistant.SpeakURL(reply)); err != nil {
		return alertCmd("Wiedergabe fehlgeschlagen", err)
	}
	return nil
}

func (v *cookingView) chatWidth() int {
	return max(20, v.state.Width-4)
}

func (v *cookingView) markdown(md string) string {
	if v.renderer == nil {
		r, err := cooking.NewRenderer(formatter.IsDark(), v.chatWidth())
		if err != nil {
			v.state.Log.Debug("markdown renderer unavailable", zap.Error(err))
			return md
		}
		v.renderer = r
	}
	return v.renderer.Render(md)
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *cookingView) View() string {
	var b strings.Builder
	switch {
	case v.loading:
		return formatter.Dim("Lade Rezept…")
	case v.err != nil:
		return formatter.StyleRed.Render("Rezept nicht verfügbar: " + v.err.Error())
	}
	r := v.session.Recipe
	b.WriteString(formatter.Header(r.Title))
	if r.Servings > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d Portionen", r.Servings)))
	}
	if r.Duration > 0 {
		b.WriteString(formatter.Dim(fmt.Sprintf("  %d min", r.Duration)))
	}
	b.WriteString("\n\n")

	b.WriteString(v.paneTitle("Zubereitung", paneSteps) + "  " + formatter.RenderProgress(v.session.Progress(), 20) +
		" " + formatter.Dim(v.session.ProgressLabel()) + "\n")
	if step := v.session.CurrentStep(); step != "" {
		b.WriteString("  " + step + "\n")
		if d, ok := cooking.ParseDuration(step); ok {
			b.WriteString(formatter.Dim("  t: Timer über "+cooking.FormatClock(d)) + "\n")
		}
	}
	b.WriteString("\n")

	ings := v.session.Ingredients()
	b.WriteString(v.paneTitle(fmt.Sprintf("Zutaten %d/%d", v.session.CheckedCount(), len(ings)), paneIngredients) + "\n")
	for i, ri := range ings {
		mark := "[ ]"
		if v.session.Checked(i) {
			mark = formatter.StyleGreen.Render("[x]")
		}
		line := fmt.Sprintf("  %s %s", mark, cooking.IngredientLine(ri))
		if v.pane == paneIngredients && i == v.ingCursor {
			line = formatter.StyleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	b.WriteString(v.paneTitle("Timer", paneTimers) + "\n")
	if v.timers.Len() == 0 {
		b.WriteString(formatter.Dim("  keine (t: aus Schritt, +: neu)") + "\n")
	}
	for i, t := range v.timers.All() {
		b.WriteString(v.renderTimer(i, t) + "\n")
	}

	if chat := v.conv.Markdown(); chat != "" || v.chatting {
		b.WriteString("\n" + formatter.Bold("Assistent") + "\n")
		if chat != "" {
			b.WriteString(v.markdown(chat) + "\n")
		}
		if err := v.conv.Err(); err != nil {
			b.WriteString(formatter.StyleRed.Render("Keine Antwort: "+err.Error()) + "\n")
		}
	}
	if v.chatting {
		b.WriteString(v.input.View())
	}
	return b.String()
}

func (v *cookingView) paneTitle(title string, p cookingPane) string {
	if v.pane == p {
		return formatter.StyleHeader.Render("▸ " + title)
	}
	return formatter.Bold("  " + title)
}

func (v *cookingView) renderTimer(i int, t *cooking.Timer) string {
	remaining := 0.0
	if t.Total > 0 {
		remaining = float64(t.Remaining) / float64(t.Total)
	}
	state := ""
	switch {
	case t.Alarming:
		state = formatter.StyleRed.Render("⏰ fertig")
	case !t.Running:
		state = formatter.Dim("pausiert")
	}
	line := fmt.Sprintf("  %s %s %s %s",
		formatter.PadRight(formatter.Truncate(t.Label, 16), 16),
		formatter.RenderCompactBar(remaining, 12, !t.Running),
		t.Clock(), state)
	if v.pane == paneTimers && i == v.timerIndex {
		line = formatter.StyleSelected.Render(line)
	}
	return line
}
