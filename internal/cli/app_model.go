package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/appstate"
	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, a persistent command bar and the alert panel.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	quitting  bool

	// Transient output from the command bar, displayed in content area.
	lastOutput string

	// Scrollable viewport for command output that exceeds terminal height.
	outputVP     viewport.Model
	outputActive bool // true when lastOutput is being displayed in the viewport

	// alert is the blocking error panel; empty when none is shown.
	alert string

	unsubscribe func()
}

func newAppModel(app *App) appModel {
	return newAppModelWithState(newSharedState(app))
}

func newAppModelWithState(state *SharedState) appModel {
	cb := newCommandBar(state)

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	formatter.SetDark(state.Store.State().Theme != appstate.ThemeLight)
	unsubscribe := state.Store.Subscribe(func(s appstate.State) {
		formatter.SetDark(s.Theme != appstate.ThemeLight)
	})

	m := appModel{
		state:       state,
		cmdBar:      cb,
		outputVP:    vp,
		unsubscribe: unsubscribe,
	}

	// The week plan is the home view.
	m.viewStack = []View{newWeekView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// popTop removes the top view, tearing it down, and returns whether a view
// was removed. The root view is never popped.
func (m *appModel) popTop() bool {
	if len(m.viewStack) <= 1 {
		return false
	}
	top := m.viewStack[len(m.viewStack)-1]
	if t, ok := top.(teardown); ok {
		t.Teardown()
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
	m.state.navigateTo(m.activeView())
	return true
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		m.state.navigateTo(v)
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.outputActive {
			m.outputVP.Width = msg.Width
			m.outputVP.Height = m.state.ContentHeight()
		}
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.alert != "" {
			return m, nil
		}
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		// Views lay out from their own origin below the header.
		msg.Y -= headerLines
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	// Navigation messages from views or command bar
	case pushViewMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		m.state.navigateTo(msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		m.popTop()
		return m, nil

	case popToRootMsg:
		m.clearOutput()
		for m.popTop() {
		}
		return m, nil

	case openRouteMsg:
		m.clearOutput()
		for i, v := range m.viewStack {
			if v.ID() == msg.id {
				for len(m.viewStack) > i+1 && m.popTop() {
				}
				return m, nil
			}
		}
		v := msg.build()
		m.viewStack = append(m.viewStack, v)
		m.state.navigateTo(v)
		return m, v.Init()

	case replaceViewMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		if len(m.viewStack) > 0 {
			if t, ok := m.activeView().(teardown); ok {
				t.Teardown()
			}
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		m.state.navigateTo(msg.view)
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast to ALL views in the stack so underlying views reload
		// data after mutations made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		m.outputActive = true
		m.outputVP.SetContent(msg.output)
		m.outputVP.Width = m.state.Width
		m.outputVP.Height = m.state.ContentHeight()
		m.outputVP.GotoTop()
		return m, nil

	case alertMsg:
		m.state.Log.Info("alert shown", zap.String("title", msg.title), zap.Error(msg.err))
		m.alert = formatter.Alert(msg.title, msg.err)
		return m, nil

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		m.popTop()
		m.clearOutput()
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case tokenChangedMsg:
		m.state.setUser(msg.token)
		return m, refreshViews()

	case quitMsg:
		return m.quit()
	}

	// Forward other messages to command bar (e.g., cursor blink)
	if m.cmdBar.Focused() {
		if cmd := m.cmdBar.UpdateNonKey(msg); cmd != nil {
			return m, cmd
		}
	}

	// Async results may belong to any view on the stack, e.g. a week load
	// that finishes after the selector opened. Deliver them to every view;
	// each ignores messages it does not own.
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	for _, v := range m.viewStack {
		if t, ok := v.(teardown); ok {
			t.Teardown()
		}
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	return m, tea.Quit
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// The alert blocks everything until dismissed.
	if m.alert != "" {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc || msg.String() == " " {
			m.alert = ""
		}
		return m, nil
	}

	// If command bar is focused, route keys there
	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.clearOutput()
		}
		cmd := m.cmdBar.Update(msg)
		return m, cmd
	}

	// When output is displayed, intercept scroll keys for the viewport.
	// Non-scroll keys dismiss the output, then fall through to normal handling.
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	// Views with their own text input receive all keys.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == ":":
		m.cmdBar.Focus()
		return m, nil

	case msg.String() == "q":
		return m.quit()

	case msg.String() == "e":
		m.state.dispatch(appstate.CycleEditMode{})
		return m, nil

	case msg.String() == "T":
		m.state.dispatch(appstate.ToggleTheme{})
		return m, nil

	case msg.Type == tea.KeyEsc:
		// Views that hold transient state (open tooltip, active drag) get
		// first claim on esc.
		if v := m.activeView(); v != nil {
			if c, ok := v.(interface{ ConsumesEsc() bool }); ok && c.ConsumesEsc() {
				break
			}
		}
		if m.popTop() {
			m.clearOutput()
		}
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	// Content area: alert, scrollable command output or the active view
	switch {
	case m.alert != "":
		sections = append(sections, m.alert)
	case m.lastOutput != "":
		if m.outputActive && m.state.Height > 0 {
			sections = append(sections, m.outputVP.View())
		} else {
			sections = append(sections, m.lastOutput)
		}
	default:
		if v := m.activeView(); v != nil {
			sections = append(sections, v.View())
		}
	}

	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.cmdBar.View())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	st := m.state.Store.State()
	title := formatter.StylePurple.Render("gabelguru")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb + "  " + formatter.ModeBadge(st.EditMode)
	header += "  " + syncBadge(st.Sync, m.state)
	if st.User != nil {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(st.User.Name) + formatter.Dim("]")
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func syncBadge(s appstate.Sync, state *SharedState) string {
	switch {
	case s.Pending > 0:
		return formatter.StyleBlue.Render("⟳ lädt")
	case s.Offline:
		return formatter.StyleYellow.Render("● offline")
	case s.LastError != "":
		return formatter.StyleRed.Render("● Fehler")
	case !s.LastSync.IsZero():
		return formatter.Dim("✓ " + formatter.HumanTimestampFrom(s.LastSync, state.Now()))
	}
	return ""
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	switch {
	case m.alert != "":
		hints = append(hints, formatter.Dim("enter: schließen"))
	case m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height:
		hints = append(hints, scrollIndicator(m.outputVP))
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))
		hints = append(hints, formatter.Dim("esc: dismiss"))
	case !m.outputActive:
		if v := m.activeView(); v != nil {
			for _, b := range v.ShortHelp() {
				hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
			}
		}
	}

	if !m.cmdBar.Focused() && !m.outputActive && m.alert == "" {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("e: mode"), formatter.Dim(": command"))
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// clearOutput dismisses the transient command output and deactivates the viewport.
func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap returns a restricted keymap for the output viewport.
// Only arrow/page keys scroll; letter keys are left free so they can dismiss
// the output or trigger global shortcuts.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// isOutputScrollKey returns true if the key should scroll the output viewport
// rather than dismissing the output.
func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}

// viewCapturesInput returns true if the active view has its own text input
// and should receive all key events (bypassing global keybindings like q/:/Esc).
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	if v.ID() == ViewForm {
		return true
	}
	if c, ok := v.(capturesInput); ok {
		return c.CapturesInput()
	}
	return false
}
