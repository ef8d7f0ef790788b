package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/delay"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/dragdrop"
	"github.com/alexanderramin/gabelguru/internal/menuplan"
	"github.com/alexanderramin/gabelguru/internal/service"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg signals that the list collection has been loaded.
type dashboardLoadedMsg struct {
	data *service.ListsData
	err  error
}

// listMutatedMsg reports a move, merge, create or delete of a list.
type listMutatedMsg struct {
	title string
	err   error
}

// ── layout ───────────────────────────────────────────────────────────────────

const (
	// dashboardGridRow is the content row of the first week of tiles.
	dashboardGridRow = 3
	tileCols         = 11
	tileRows         = 3
)

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the month calendar of shopping lists. Lists are moved
// to another day or merged into another list by dragging their tile, with
// a mouse long press or with m and the arrow keys.
type dashboardView struct {
	state   *SharedState
	data    *service.ListsData
	loading bool
	err     error

	month  time.Time
	cursor time.Time

	drag   *dragdrop.Tracker
	layout dragdrop.Layout
	// clickDate is the tile under a press that never became a drag.
	clickDate string
}

func newDashboardView(state *SharedState) *dashboardView {
	today := calendar.Midnight(state.Now())
	v := &dashboardView{
		state:   state,
		loading: true,
		month:   firstOfMonth(today),
		cursor:  today,
		drag:    dragdrop.NewTracker(),
	}
	v.buildLayout()
	return v
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Kalender" }

func (v *dashboardView) ShortHelp() []key.Binding {
	if v.drag.Dragging() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←↑↓→", "Ziel")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ablegen")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abbrechen")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "planen")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "verschieben")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "neue Liste")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "löschen")),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "Monat")),
	}
}

// ConsumesEsc cancels an active drag before esc navigates back.
func (v *dashboardView) ConsumesEsc() bool { return v.drag.Dragging() || v.drag.Pressing() }

// Teardown drops a pending long press.
func (v *dashboardView) Teardown() { v.drag.Cancel() }

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) load() tea.Cmd {
	app := v.state.App
	state := v.state
	v.loading = true
	state.beginSync()
	return func() tea.Msg {
		data, err := app.Lists.All(state.ctx())
		return dashboardLoadedMsg{data: data, err: err}
	}
}

func (v *dashboardView) lists() []domain.List {
	if v.data == nil {
		return nil
	}
	return v.data.Lists
}

func (v *dashboardView) listOn(date string) *domain.List {
	return dragdrop.ListOn(v.lists(), date)
}

// buildLayout registers every tile of the shown month in px so pointer
// positions resolve to days.
func (v *dashboardView) buildLayout() {
	v.layout.Reset()
	cw, ch := v.state.Cells.Width, v.state.Cells.Height
	for w, week := range calendar.MonthGrid(v.month) {
		for d, day := range week {
			v.layout.Add(calendar.DayKey(day), menuplan.Rect{
				X: float64(d*tileCols) * cw,
				Y: float64(dashboardGridRow+w*tileRows) * ch,
				W: float64(tileCols) * cw,
				H: float64(tileRows) * ch,
			})
		}
	}
}

func (v *dashboardView) setMonth(t time.Time) {
	m := firstOfMonth(t)
	if m.Equal(v.month) {
		return
	}
	v.month = m
	v.buildLayout()
}

// moveCursor shifts the cursor by days and follows it across months. During
// a keyboard drag the cursor is the drop target.
func (v *dashboardView) moveCursor(days int) {
	v.cursor = v.cursor.AddDate(0, 0, days)
	v.setMonth(v.cursor)
	v.drag.MoveTarget(dragdrop.SourceKeyboard, calendar.DayKey(v.cursor))
}

func (v *dashboardView) changeMonth(delta int) {
	v.month = v.month.AddDate(0, delta, 0)
	v.cursor = v.month
	v.buildLayout()
	v.drag.MoveTarget(dragdrop.SourceKeyboard, calendar.DayKey(v.cursor))
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		offline := msg.data != nil && msg.data.Offline
		v.state.endSync(offline, msg.err)
		v.loading = false
		if msg.err != nil {
			if v.data == nil {
				v.err = msg.err
			}
			return v, nil
		}
		v.err = nil
		v.data = msg.data
		return v, nil

	case listMutatedMsg:
		if msg.err != nil {
			return v, tea.Batch(alertCmd(msg.title, msg.err), v.load())
		}
		return v, tea.Batch(outputCmd(formatter.StyleGreen.Render(msg.title)), refreshViews())

	case refreshViewMsg:
		return v, v.load()

	case delay.FiredMsg:
		if v.drag.LongPressElapsed(msg.Token) {
			return v, v.state.bell()
		}
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		v.moveCursor(-1)
	case "right", "l":
		v.moveCursor(1)
	case "up", "k":
		v.moveCursor(-7)
	case "down", "j":
		v.moveCursor(7)
	case "pgup", "[":
		v.changeMonth(-1)
	case "pgdown", "]":
		v.changeMonth(1)
	case "esc":
		v.drag.Cancel()
	case "m", " ":
		if v.drag.Dragging() {
			return v.resolveDrop(v.drag.DropAtTarget(dragdrop.SourceKeyboard, v.lists()))
		}
		day := calendar.DayKey(v.cursor)
		v.drag.PickUp(day, v.listOn(day))
	case "enter":
		if v.drag.Dragging() {
			return v.resolveDrop(v.drag.DropAtTarget(dragdrop.SourceKeyboard, v.lists()))
		}
		return v.open(calendar.DayKey(v.cursor))
	case "p":
		if l := v.listOn(calendar.DayKey(v.cursor)); l != nil {
			return pushView(newPlanningView(v.state, l.ID))
		}
	case "n":
		return v.createList(calendar.DayKey(v.cursor))
	case "x", "delete":
		if l := v.listOn(calendar.DayKey(v.cursor)); l != nil {
			return v.deleteList(*l)
		}
	case "r":
		return v.load()
	}
	return nil
}

// open plans the list on date, or offers to create one on an empty day.
func (v *dashboardView) open(date string) tea.Cmd {
	if l := v.listOn(date); l != nil {
		return pushView(newPlanningView(v.state, l.ID))
	}
	return v.createList(date)
}

func (v *dashboardView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := v.state.Cells.ToPixels(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y == 0 {
			return v.headerClick(msg.X)
		}
		date, hit := v.layout.HitTest(p)
		if !hit {
			return nil
		}
		v.clickDate = date
		tok, ok := v.drag.Press(date, v.listOn(date), p)
		if !ok {
			return nil
		}
		return v.state.Tick(dragdrop.LongPressDelay, func(at time.Time) tea.Msg {
			return delay.FiredMsg{Token: tok, At: at}
		})

	case msg.Action == tea.MouseActionMotion:
		v.drag.Move(dragdrop.SourceMouse, p)
		if !v.drag.Pressing() && !v.drag.Dragging() {
			v.clickDate = ""
		}

	case msg.Action == tea.MouseActionRelease:
		dragging := v.drag.Dragging()
		drop := v.drag.Release(dragdrop.SourceMouse, p, &v.layout, v.lists())
		if dragging {
			v.clickDate = ""
			return v.resolveDrop(drop)
		}
		if v.clickDate != "" {
			date := v.clickDate
			v.clickDate = ""
			if d, err := calendar.ParseDay(date, v.cursor.Location()); err == nil {
				if calendar.SameDay(d, v.cursor) {
					return v.open(date)
				}
				v.cursor = d
			}
		}
	}
	return nil
}

// headerClick handles the ‹ and › month arrows.
func (v *dashboardView) headerClick(x int) tea.Cmd {
	switch {
	case x <= 2:
		v.changeMonth(-1)
	case x >= 7*tileCols-3:
		v.changeMonth(1)
	}
	return nil
}

// resolveDrop performs a move directly and asks before merging, which
// cannot be undone.
func (v *dashboardView) resolveDrop(d dragdrop.Drop) tea.Cmd {
	app := v.state.App
	state := v.state
	switch d.Kind {
	case dragdrop.KindMove:
		v.moveLocal(d.SourceID, d.Date)
		return func() tea.Msg {
			_, err := app.Lists.Move(state.ctx(), d.SourceID, d.Date)
			return listMutatedMsg{title: "Liste verschoben auf " + d.Date, err: err}
		}
	case dragdrop.KindMerge:
		target := v.findList(d.TargetID)
		desc := "Die Artikel werden in die bestehende Liste übernommen."
		if target != nil {
			desc = fmt.Sprintf("Die Artikel werden in %q übernommen.", target.DisplayName())
		}
		var confirmed bool
		form := wizardConfirm("Listen zusammenführen?", desc, &confirmed)
		return startWizardCmd(v.state, "Zusammenführen", form, func() tea.Cmd {
			if !confirmed {
				return nil
			}
			return func() tea.Msg {
				err := app.Lists.Merge(state.ctx(), d.TargetID, d.SourceID)
				return listMutatedMsg{title: "Listen zusammengeführt", err: err}
			}
		})
	}
	return nil
}

// moveLocal shows the moved list on its new day until the refetch lands.
func (v *dashboardView) moveLocal(id int64, date string) {
	if l := v.findList(id); l != nil {
		l.Date = date
	}
}

func (v *dashboardView) findList(id int64) *domain.List {
	if v.data == nil {
		return nil
	}
	for i := range v.data.Lists {
		if v.data.Lists[i].ID == id {
			return &v.data.Lists[i]
		}
	}
	return nil
}

func (v *dashboardView) createList(date string) tea.Cmd {
	name := ""
	app := v.state.App
	state := v.state
	form := newListForm(&date, &name)
	return startWizardCmd(v.state, "Neue Liste", form, func() tea.Cmd {
		return func() tea.Msg {
			_, err := app.Lists.Create(state.ctx(), date, strings.TrimSpace(name))
			return listMutatedMsg{title: "Liste angelegt für " + date, err: err}
		}
	})
}

func (v *dashboardView) deleteList(l domain.List) tea.Cmd {
	var confirmed bool
	app := v.state.App
	state := v.state
	form := wizardConfirm("Liste löschen?", l.DisplayName(), &confirmed)
	return startWizardCmd(v.state, "Löschen", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg {
			err := app.Lists.Delete(state.ctx(), l.ID)
			if err != nil {
				state.Log.Warn("list delete failed", zap.Int64("list_id", l.ID), zap.Error(err))
			}
			return listMutatedMsg{title: "Liste gelöscht", err: err}
		}
	})
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	var b strings.Builder
	width := 7 * tileCols
	title := formatter.StyleHeader.Render(formatter.MonthLabel(v.month))
	pad := max(0, (width-6-lipgloss.Width(title))/2)
	b.WriteString(" ‹ " + strings.Repeat(" ", pad) + title)
	b.WriteString(strings.Repeat(" ", max(1, width-6-pad-lipgloss.Width(title))) + " › ")
	if v.data != nil && v.data.Offline {
		b.WriteString(" " + formatter.StyleYellow.Render("offline"))
	}
	b.WriteString("\n\n")

	if v.loading && v.data == nil {
		return b.String() + formatter.Dim("Lade Listen…")
	}
	if v.err != nil {
		return b.String() + formatter.StyleRed.Render("Listen nicht verfügbar: "+v.err.Error()) + "\n" + formatter.Dim("r: erneut versuchen")
	}

	for _, wd := range []string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"} {
		b.WriteString(formatter.Dim(formatter.PadRight(" "+wd, tileCols)))
	}
	b.WriteString("\n")

	for _, week := range calendar.MonthGrid(v.month) {
		lines := make([][]string, tileRows)
		for _, day := range week {
			tile := v.renderTile(day)
			for i := range lines {
				lines[i] = append(lines[i], tile[i])
			}
		}
		for _, l := range lines {
			b.WriteString(strings.Join(l, "") + "\n")
		}
	}

	if v.drag.Dragging() {
		b.WriteString(v.dragHint())
	}
	return b.String()
}

// renderTile returns the tileRows lines of one day cell, each tileCols wide.
func (v *dashboardView) renderTile(day time.Time) []string {
	dayKey := calendar.DayKey(day)
	inMonth := day.Month() == v.month.Month()
	num := fmt.Sprintf(" %2d", day.Day())
	if calendar.SameDay(day, v.state.Now()) {
		num = formatter.StyleYellowBold.Render(num)
	} else if !inMonth {
		num = formatter.Dim(num)
	}

	label, cost := "", ""
	if l := v.listOn(dayKey); l != nil {
		if l.TotalCost > 0 {
			cost = formatter.Dim("  " + formatter.Truncate(formatter.Money(l.TotalCost), tileCols-3))
		}
		text := formatter.Truncate(l.DisplayName(), tileCols-3)
		if l.Name == "" {
			text = "Liste"
		}
		if v.drag.Dragging() && l.ID == v.drag.ListID() {
			label = formatter.StyleDim.Render(" ◌ " + text)
		} else {
			label = formatter.StyleGreen.Render(" ● " + text)
		}
	}

	lines := []string{padCell(num, tileCols-1), padCell(label, tileCols-1), padCell(cost, tileCols-1)}
	switch {
	case v.isDropTarget(dayKey):
		style := lipgloss.NewStyle().Background(formatter.ColorAccent)
		lines[0] = style.Render(lines[0])
		lines[1] = style.Render(lines[1])
	case calendar.SameDay(day, v.cursor):
		lines[0] = formatter.StyleSelected.Render(lines[0])
	}
	return lines
}

// isDropTarget reports whether the tile is under the drag cursor.
func (v *dashboardView) isDropTarget(dayKey string) bool {
	if !v.drag.Dragging() {
		return false
	}
	if v.drag.Source() == dragdrop.SourceKeyboard {
		return calendar.NormalizeKey(v.drag.KeyTarget()) == dayKey
	}
	date, ok := v.layout.HitTest(v.drag.Cursor())
	return ok && date == dayKey
}

func (v *dashboardView) dragHint() string {
	target := calendar.DayKey(v.cursor)
	if v.drag.Source() == dragdrop.SourceMouse {
		if d, ok := v.layout.HitTest(v.drag.Cursor()); ok {
			target = d
		}
	}
	drop := dragdrop.Resolve(v.drag.Origin(), v.drag.ListID(), target, true, v.lists())
	switch drop.Kind {
	case dragdrop.KindMerge:
		return formatter.StyleYellow.Render("Ablegen führt die Listen zusammen.")
	case dragdrop.KindMove:
		return formatter.Dim("Ablegen verschiebt die Liste auf " + drop.Date + ".")
	}
	return formatter.Dim("Zieh die Liste auf einen anderen Tag.")
}
