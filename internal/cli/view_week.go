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
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/menuplan"
	"github.com/alexanderramin/gabelguru/internal/service"
)

// ── messages ─────────────────────────────────────────────────────────────────

// weekLoadedMsg carries the result of a week fetch issued at seq.
type weekLoadedMsg struct {
	seq  uint64
	data *service.WeekData
	err  error
}

// mealSelectedMsg is emitted by the meal selector when the user picks a
// meal for (date, meal).
type mealSelectedMsg struct {
	date string
	meal domain.MealType
	sel  domain.MenuSelection
}

// menuSavedMsg reports the outcome of a slot write or delete.
type menuSavedMsg struct {
	title string
	err   error
}

// ── layout ───────────────────────────────────────────────────────────────────

type weekLineKind int

const (
	lineHeader weekLineKind = iota
	lineBlank
	lineDay
	lineSlot
	lineTooltip
	lineTooltipRecipe
)

// weekLine is one rendered content row. Mouse rows index this slice
// directly, so View and hit testing always agree.
type weekLine struct {
	kind weekLineKind
	day  int
	slot int
	text string
}

// ── view ─────────────────────────────────────────────────────────────────────

// weekView is the home screen: seven day rows of the selected ISO week.
type weekView struct {
	state *SharedState

	nav     menuplan.WeekNav
	data    *service.WeekData
	rows    []menuplan.DayRow
	loading bool

	// cursor addresses a day row; slot is -1 for the day line itself.
	cursorDay  int
	cursorSlot int
	expanded   int // day index, -1 when all rows are collapsed

	tooltip  menuplan.Tooltip
	swipe    menuplan.SwipeTracker
	pressRow int
}

func newWeekView(state *SharedState) *weekView {
	v := &weekView{
		state:      state,
		nav:        menuplan.NewWeekNav(state.Now()),
		cursorSlot: -1,
		expanded:   -1,
		pressRow:   -1,
	}
	v.swipe.Metrics = state.Cells
	v.cursorDay = v.todayIndex()
	v.rebuild()
	return v
}

func (v *weekView) ID() ViewID    { return ViewWeek }
func (v *weekView) Title() string { return "Woche" }

func (v *weekView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "Woche")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "öffnen")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "heute")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "Liste planen")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Kalender")),
	}
}

// ConsumesEsc lets esc close the tooltip or collapse the open day before
// the app treats it as back.
func (v *weekView) ConsumesEsc() bool {
	return v.tooltip.Open() || v.expanded >= 0
}

func (v *weekView) Init() tea.Cmd {
	return v.load()
}

// ── data loading ─────────────────────────────────────────────────────────────

// load fetches the displayed week. The result carries the current sequence
// token so a slower response for an earlier week is discarded.
func (v *weekView) load() tea.Cmd {
	app := v.state.App
	state := v.state
	seq := v.nav.Seq
	start := v.nav.Start
	v.loading = true
	state.beginSync()
	return func() tea.Msg {
		data, err := app.Weeks.LoadWeek(state.ctx(), start)
		return weekLoadedMsg{seq: seq, data: data, err: err}
	}
}

func (v *weekView) changeWeek(offset int) tea.Cmd {
	if offset == 0 {
		return nil
	}
	v.nav.ChangeWeek(offset)
	v.resetSelection()
	return v.load()
}

func (v *weekView) jumpTo(t time.Time) tea.Cmd {
	v.nav.JumpTo(t)
	v.resetSelection()
	return v.load()
}

func (v *weekView) resetSelection() {
	v.tooltip.Close()
	v.expanded = -1
	v.cursorSlot = -1
	v.cursorDay = v.todayIndex()
}

// todayIndex returns the weekday index of today when it lies in the shown
// week, else 0.
func (v *weekView) todayIndex() int {
	now := v.state.Now()
	if !v.nav.Range().Contains(calendar.DayKey(now)) {
		return 0
	}
	return (int(now.Weekday()) + 6) % 7
}

func (v *weekView) rebuild() {
	var menus []domain.Menu
	var lists []domain.List
	if v.data != nil {
		menus, lists = v.data.Menus, v.data.Lists
	}
	v.rows = menuplan.BuildWeek(v.nav.Range(), menus, lists, v.state.Now())
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *weekView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case weekLoadedMsg:
		offline := msg.data != nil && msg.data.Offline
		v.state.endSync(offline, msg.err)
		if !v.nav.Accept(msg.seq) {
			v.state.Log.Debug("dropping stale week response",
				zap.Uint64("seq", msg.seq), zap.Uint64("current", v.nav.Seq))
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			// Keep whatever is on screen.
			return v, nil
		}
		v.data = msg.data
		v.tooltip.Close()
		v.rebuild()
		return v, nil

	case weekJumpMsg:
		if !msg.Date.IsZero() {
			return v, v.jumpTo(msg.Date)
		}
		return v, v.changeWeek(msg.Offset)

	case mealSelectedMsg:
		return v, v.saveSlot(msg)

	case menuSavedMsg:
		if msg.err != nil {
			return v, alertCmd(msg.title, msg.err)
		}
		return v, v.load()

	case refreshViewMsg:
		return v, v.load()

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *weekView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		return v.changeWeek(-1)
	case "right", "l":
		return v.changeWeek(1)
	case "t":
		return v.jumpTo(v.state.Now())
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "enter", " ":
		return v.activateCursor()
	case "r":
		return v.openTooltipRecipe()
	case "g":
		date := calendar.DayKey(v.state.Now())
		return startWizardCmd(v.state, "Springen", jumpDateForm(&date), func() tea.Cmd {
			d, err := calendar.ParseDay(date, time.Local)
			if err != nil {
				return nil
			}
			return func() tea.Msg { return weekJumpMsg{Date: d} }
		})
	case "p":
		if v.cursorDay < len(v.rows) && v.rows[v.cursorDay].List != nil {
			return pushView(newPlanningView(v.state, v.rows[v.cursorDay].List.ID))
		}
	case "d":
		return func() tea.Msg {
			return openRouteMsg{id: ViewDashboard, build: func() View { return newDashboardView(v.state) }}
		}
	case "esc":
		switch {
		case v.tooltip.Open():
			v.tooltip.Close()
		case v.expanded >= 0:
			v.cursorDay = v.expanded
			v.expanded = -1
			v.cursorSlot = -1
		}
	}
	return nil
}

// moveCursor walks day lines and, inside the expanded day, its slots.
func (v *weekView) moveCursor(delta int) {
	if len(v.rows) == 0 {
		return
	}
	v.tooltip.Close()
	type pos struct{ day, slot int }
	var order []pos
	for d := range v.rows {
		order = append(order, pos{d, -1})
		if d == v.expanded {
			for s := range v.rows[d].Slots {
				order = append(order, pos{d, s})
			}
		}
	}
	cur := 0
	for i, p := range order {
		if p.day == v.cursorDay && p.slot == v.cursorSlot {
			cur = i
			break
		}
	}
	next := cur + delta
	if next < 0 || next >= len(order) {
		return
	}
	v.cursorDay, v.cursorSlot = order[next].day, order[next].slot
}

// activateCursor is the keyboard path: a day line toggles expansion, a slot
// line dispatches a non-pointer click.
func (v *weekView) activateCursor() tea.Cmd {
	if v.cursorDay >= len(v.rows) {
		return nil
	}
	if v.cursorSlot < 0 {
		v.toggleExpanded(v.cursorDay)
		return nil
	}
	row := v.rows[v.cursorDay]
	slot := row.Slots[v.cursorSlot]
	return v.dispatchSlot(slot, false, v.slotRect(v.cursorDay, v.cursorSlot))
}

func (v *weekView) toggleExpanded(day int) {
	v.tooltip.Close()
	if v.expanded == day {
		v.expanded = -1
		v.cursorSlot = -1
		return
	}
	v.expanded = day
	v.cursorDay = day
	v.cursorSlot = -1
}

// dispatchSlot runs what a slot activation means in the current edit mode.
func (v *weekView) dispatchSlot(slot menuplan.Slot, fromPointer bool, anchor menuplan.Rect) tea.Cmd {
	action := menuplan.Dispatch(v.state.EditMode(), menuplan.Click{Slot: slot, FromPointer: fromPointer})
	v.state.Log.Debug("slot activated",
		zap.String("slot", slot.Key()), zap.Stringer("action", action), zap.Bool("pointer", fromPointer))

	if action != menuplan.ActionToggleTooltip {
		v.tooltip.Close()
	}
	switch action {
	case menuplan.ActionToggleTooltip:
		v.tooltip.Toggle(slot, anchor)
	case menuplan.ActionOpenCooking:
		return pushView(newCookingView(v.state, slot.Menu.RecipeRef()))
	case menuplan.ActionOpenSelector:
		return pushView(newSelectorView(v.state, slot.Date, slot.MealType))
	case menuplan.ActionConfirmDelete:
		return v.confirmDelete(slot)
	}
	return nil
}

func (v *weekView) openTooltipRecipe() tea.Cmd {
	id, ok := v.tooltip.OpenRecipe()
	if !ok {
		return nil
	}
	return pushView(newCookingView(v.state, id))
}

func (v *weekView) confirmDelete(slot menuplan.Slot) tea.Cmd {
	menu := *slot.Menu
	var confirmed bool
	title := fmt.Sprintf("%s am %s löschen?", menu.Title(), slot.Date)
	form := wizardConfirm(title, slot.MealType.Label(), &confirmed)
	app := v.state.App
	state := v.state
	return startWizardCmd(v.state, "Löschen", form, func() tea.Cmd {
		if !confirmed {
			return nil
		}
		return func() tea.Msg {
			err := app.Menus.Delete(state.ctx(), menu.ID)
			return menuSavedMsg{title: "Löschen fehlgeschlagen", err: err}
		}
	})
}

// saveSlot writes a selection: update when the slot already has a menu,
// create otherwise.
func (v *weekView) saveSlot(msg mealSelectedMsg) tea.Cmd {
	var menus []domain.Menu
	if v.data != nil {
		menus = v.data.Menus
	}
	existing, in := menuplan.PlanSlot(menus, msg.date, msg.meal, msg.sel)
	var prior *domain.Menu
	if existing != nil {
		m := *existing
		prior = &m
	}
	app := v.state.App
	state := v.state
	return func() tea.Msg {
		_, err := app.Menus.SaveSlot(state.ctx(), prior, in)
		return menuSavedMsg{title: "Speichern fehlgeschlagen", err: err}
	}
}

// ── mouse ────────────────────────────────────────────────────────────────────

func (v *weekView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			v.moveCursor(1)
		case tea.MouseButtonLeft:
			v.swipe.Begin(msg.X, msg.Y)
			v.pressRow = msg.Y
		}
		return nil

	case tea.MouseActionRelease:
		if !v.swipe.Active() {
			return nil
		}
		pressRow := v.pressRow
		v.pressRow = -1
		if off := v.swipe.End(msg.X, msg.Y); off != 0 {
			return v.changeWeek(off)
		}
		if msg.Y != pressRow {
			return nil
		}
		return v.click(msg.X, msg.Y)
	}
	return nil
}

// click is the pointer path for a press and release on the same row.
func (v *weekView) click(col, row int) tea.Cmd {
	p := v.state.Cells.ToPixels(col, row)
	lines := v.layout()

	// A click on the slot that owns the open tooltip is a toggle, not an
	// outside click.
	ownSlot := row >= 0 && row < len(lines) && lines[row].kind == lineSlot &&
		v.rows[lines[row].day].Slots[lines[row].slot].Key() == v.tooltip.Key()
	if !ownSlot && v.tooltip.Open() && v.tooltip.ClickAt(p) {
		if row < len(lines) && lines[row].kind == lineTooltipRecipe {
			return v.openTooltipRecipe()
		}
		return nil
	}
	if row < 0 || row >= len(lines) {
		v.tooltip.Close()
		return nil
	}

	line := lines[row]
	switch line.kind {
	case lineDay:
		v.tooltip.Close()
		v.toggleExpanded(line.day)
	case lineSlot:
		v.cursorDay, v.cursorSlot = line.day, line.slot
		slot := v.rows[line.day].Slots[line.slot]
		return v.dispatchSlot(slot, true, v.rowRect(row))
	case lineHeader:
		v.tooltip.Close()
		switch {
		case col < 3:
			return v.changeWeek(-1)
		case col >= v.width()-3:
			return v.changeWeek(1)
		}
	default:
		v.tooltip.Close()
	}
	return nil
}

func (v *weekView) width() int {
	if v.state.Width > 0 {
		return v.state.Width
	}
	return 80
}

// rowRect returns the px rectangle of content row i.
func (v *weekView) rowRect(i int) menuplan.Rect {
	c := v.state.Cells
	return menuplan.Rect{X: 0, Y: float64(i) * c.Height, W: float64(v.width()) * c.Width, H: c.Height}
}

// slotRect returns the rectangle of a slot line, used as the tooltip anchor
// for keyboard activation.
func (v *weekView) slotRect(day, slot int) menuplan.Rect {
	for i, l := range v.layoutWithoutTooltip() {
		if l.kind == lineSlot && l.day == day && l.slot == slot {
			return v.rowRect(i)
		}
	}
	return menuplan.Rect{}
}

// ── layout & rendering ───────────────────────────────────────────────────────

func (v *weekView) layoutWithoutTooltip() []weekLine {
	var lines []weekLine
	lines = append(lines, weekLine{kind: lineHeader, text: v.renderHeader()}, weekLine{kind: lineBlank})
	for d, row := range v.rows {
		lines = append(lines, weekLine{kind: lineDay, day: d, slot: -1, text: v.renderDay(d, row)})
		if d != v.expanded {
			continue
		}
		for s, slot := range row.Slots {
			lines = append(lines, weekLine{kind: lineSlot, day: d, slot: s, text: v.renderSlot(d, s, slot)})
		}
	}
	return lines
}

// layout returns all content rows, including the open tooltip inserted
// below its slot. It records the tooltip's bounds for click testing.
func (v *weekView) layout() []weekLine {
	lines := v.layoutWithoutTooltip()
	if !v.tooltip.Open() {
		return lines
	}
	at := -1
	for i, l := range lines {
		if l.kind == lineSlot && v.rows[l.day].Slots[l.slot].Key() == v.tooltip.Key() {
			at = i
			break
		}
	}
	if at < 0 {
		return lines
	}

	box, boxWidth := v.renderTooltip()
	pad := v.tooltipColumn(boxWidth)
	var inserted []weekLine
	boxLines := strings.Split(box, "\n")
	for _, bl := range boxLines {
		kind := lineTooltip
		if strings.Contains(bl, "[r]") {
			kind = lineTooltipRecipe
		}
		inserted = append(inserted, weekLine{kind: kind, text: strings.Repeat(" ", pad) + bl})
	}

	c := v.state.Cells
	v.tooltip.SetBounds(menuplan.Rect{
		X: float64(pad) * c.Width,
		Y: float64(at+1) * c.Height,
		W: float64(boxWidth) * c.Width,
		H: float64(len(inserted)) * c.Height,
	})

	out := make([]weekLine, 0, len(lines)+len(inserted))
	out = append(out, lines[:at+1]...)
	out = append(out, inserted...)
	out = append(out, lines[at+1:]...)
	return out
}

// tooltipColumn converts the placement point to a left padding in cells.
func (v *weekView) tooltipColumn(boxWidth int) int {
	p := menuplan.Place(v.tooltip.Anchor(), v.state.ViewportPx())
	cw := v.state.Cells.Width
	col := int(p.X/cw) - boxWidth/2
	if col < 0 {
		col = 0
	}
	if limit := v.width() - boxWidth; col > limit && limit >= 0 {
		col = limit
	}
	return col
}

func (v *weekView) renderTooltip() (string, int) {
	m := v.tooltip.Menu()
	var b strings.Builder
	b.WriteString(formatter.Bold(m.Title()))
	if m.Description != "" && m.Description != m.Title() {
		b.WriteString("\n" + formatter.Dim(m.Description))
	}
	if m.IsEatingOut {
		b.WriteString("\n" + menuplan.IconEatingOut + " auswärts essen")
	}
	if m.HasRecipe() {
		b.WriteString("\n" + formatter.StyleGreen.Render("[r] Rezept öffnen"))
	}
	box := formatter.RenderBox("", b.String())
	width := 0
	for _, l := range strings.Split(box, "\n") {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}
	return box, width
}

func (v *weekView) renderHeader() string {
	label := "◀  " + formatter.StyleHeader.Render(v.nav.Label()) + "  ▶"
	switch {
	case v.loading:
		label += "  " + formatter.Dim("lädt…")
	case v.data != nil && v.data.Offline:
		label += "  " + formatter.StyleYellow.Render("offline")
	}
	return label
}

func (v *weekView) renderDay(d int, row menuplan.DayRow) string {
	marker := "▸ "
	if d == v.expanded {
		marker = "▾ "
	}
	day := formatter.DayLabel(row.Date)
	if row.IsToday {
		day = formatter.StyleHeader.Render(day)
	} else {
		day = formatter.Bold(day)
	}
	line := marker + day + "  "
	if d != v.expanded {
		line += formatter.ChipLine(row, max(v.width()-40, 20))
	} else {
		line += formatter.Dim(fmt.Sprintf("%d geplant", row.FilledCount()))
	}
	if row.List != nil {
		line += "  " + formatter.StyleBlue.Render("🛒 "+formatter.Truncate(row.List.DisplayName(), 16)+" "+formatter.Money(row.List.TotalCost))
	}
	if d == v.cursorDay && v.cursorSlot < 0 {
		return formatter.StyleSelected.Render(line)
	}
	return line
}

func (v *weekView) renderSlot(d, s int, slot menuplan.Slot) string {
	text := "    " + slot.Icon() + " " + formatter.PadRight(slot.MealType.Label(), 12)
	if slot.Filled() {
		text += slot.Menu.Title()
	} else {
		text += formatter.Dim("–")
	}
	if d == v.cursorDay && s == v.cursorSlot {
		return formatter.StyleSelected.Render(text)
	}
	return text
}

func (v *weekView) View() string {
	lines := v.layout()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	if v.data == nil && !v.loading {
		out = append(out, formatter.Dim("Keine Daten. ':week' lädt neu."))
	}
	return strings.Join(out, "\n")
}
