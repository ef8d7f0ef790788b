package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/reconcile"
	"github.com/alexanderramin/gabelguru/internal/service"
)

// ── messages ─────────────────────────────────────────────────────────────────

type planningLoadedMsg struct {
	listID int64
	bundle *service.PlanningBundle
	err    error
}

type planningSavedMsg struct {
	res *service.SaveResult
	err error
}

type substitutionSavedMsg struct {
	prev reconcile.SubstitutionSnapshot
	err  error
}

type substitutionClearedMsg struct {
	prev reconcile.SubstitutionSnapshot
	data *domain.PlanningData
	err  error
}

// planningFirstRow is the content row of the first ingredient.
const planningFirstRow = 3

// planningView is the bulk planning modal for one shopping list.
type planningView struct {
	state  *SharedState
	listID int64

	session *reconcile.Session
	loading bool
	saving  bool
	err     error

	cursor int
	offset int

	pressX, pressY int
	pressing       bool
}

func newPlanningView(state *SharedState, listID int64) *planningView {
	return &planningView{state: state, listID: listID, loading: true}
}

func (v *planningView) ID() ViewID    { return ViewPlanning }
func (v *planningView) Title() string { return fmt.Sprintf("Planung #%d", v.listID) }

func (v *planningView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Bedarf")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "1×")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "bearbeiten")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s/u", "ersetzen/zurück")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "ausblenden")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "speichern")),
	}
}

func (v *planningView) Init() tea.Cmd {
	return v.load()
}

func (v *planningView) load() tea.Cmd {
	app := v.state.App
	state := v.state
	listID := v.listID
	v.loading = true
	return func() tea.Msg {
		b, err := app.Planning.Load(state.ctx(), listID)
		return planningLoadedMsg{listID: listID, bundle: b, err: err}
	}
}

func (v *planningView) rows() []reconcile.Row {
	if v.session == nil {
		return nil
	}
	return v.session.Rows()
}

func (v *planningView) current() (reconcile.Row, bool) {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return reconcile.Row{}, false
	}
	return rows[v.cursor], true
}

func (v *planningView) visibleRows() int {
	h := v.state.ContentHeight() - planningFirstRow - 2
	if h < 3 {
		return 3
	}
	return h
}

func (v *planningView) clampCursor() {
	n := len(v.rows())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	rows := v.visibleRows()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *planningView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planningLoadedMsg:
		if msg.listID != v.listID {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			v.state.Log.Warn("planning load failed", zap.Int64("list_id", v.listID), zap.Error(msg.err))
			return v, nil
		}
		v.err = nil
		b := msg.bundle
		if v.session == nil {
			v.session = reconcile.NewSession(v.listID, b.Data, b.Units, b.Products, b.Substitutions)
		} else {
			v.session.ReplaceData(b.Data)
		}
		v.clampCursor()
		return v, nil

	case planningSavedMsg:
		v.saving = false
		if msg.err != nil {
			return v, alertCmd("Speichern fehlgeschlagen", msg.err)
		}
		out := fmt.Sprintf("%d Artikel zur Liste hinzugefügt.", msg.res.ItemsCreated)
		if msg.res.NoteFailures > 0 {
			out += " " + formatter.StyleYellow.Render(fmt.Sprintf("%d Notizen nicht gespeichert.", msg.res.NoteFailures))
		}
		return v, func() tea.Msg { return wizardCompleteOutput(formatter.StyleGreen.Render(out)) }

	case substitutionSavedMsg:
		if msg.err != nil {
			v.session.Restore(msg.prev)
			return v, alertCmd("Ersetzen fehlgeschlagen", msg.err)
		}
		return v, nil

	case substitutionClearedMsg:
		if msg.err != nil {
			v.session.Restore(msg.prev)
			return v, alertCmd("Ersetzung nicht entfernt", msg.err)
		}
		if msg.data != nil {
			v.session.ReplaceData(*msg.data)
			v.clampCursor()
		}
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *planningView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.session == nil {
		if msg.String() == "r" {
			return v.load()
		}
		return nil
	}
	row, ok := v.current()
	switch msg.String() {
	case "up", "k":
		v.cursor--
		v.clampCursor()
	case "down", "j":
		v.cursor++
		v.clampCursor()
	case "a":
		if ok {
			v.session.QuickAddPrimary(row.ProductID())
		}
	case "1":
		if ok {
			v.session.QuickAddFlat(row.ProductID())
		}
	case "c", "backspace":
		if ok {
			v.session.Clear(row.ProductID())
		}
	case "+", "-":
		if ok {
			delta := 1
			if msg.String() == "-" {
				delta = -1
			}
			adj, _ := v.session.Adjustment(row.ProductID())
			adj.Unit = v.session.CycleUnit(adj.Unit, delta)
			v.session.Edit(row.ProductID(), adj)
		}
	case "enter", "e":
		if ok {
			return v.editRow(row)
		}
	case "s":
		if ok {
			return v.substituteRow(row)
		}
	case "u":
		if ok {
			return v.clearSubstitution(row)
		}
	case "x", "delete":
		if ok {
			v.session.Hide(row.ProductID())
			v.clampCursor()
		}
	case "H":
		v.session.Unhide()
	case "w", "ctrl+s":
		return v.save()
	case "r":
		return v.load()
	}
	return nil
}

func (v *planningView) editRow(row reconcile.Row) tea.Cmd {
	adj, _ := v.session.Adjustment(row.ProductID())
	qty, unit, note := adj.Quantity, adj.Unit, adj.Note
	if unit == "" {
		unit = v.session.DefaultUnit(row.ProductID())
	}
	pid := row.ProductID()
	form := wizardAdjustment(row.Name, v.session.Units, &qty, &unit, &note, v.session.NoteSuggestions(""))
	return startWizardCmd(v.state, row.Name, form, func() tea.Cmd {
		next := reconcile.Adjustment{Quantity: qty, Unit: unit, Note: note}
		if strings.TrimSpace(qty) == "" {
			// An emptied quantity removes the adjustment even when a
			// unit is still selected.
			next.Unit = ""
		}
		v.session.Edit(pid, next)
		return nil
	})
}

func (v *planningView) substituteRow(row reconcile.Row) tea.Cmd {
	candidates := v.session.SearchProducts("", row.ProductID(), 0)
	if len(candidates) == 0 {
		return outputCmd(formatter.Dim("Keine anderen Produkte vorhanden."))
	}
	var chosen int64
	pid := row.ProductID()
	form := wizardSelectProduct("Ersetzen: "+row.Name, candidates, &chosen)
	app := v.state.App
	state := v.state
	listID := v.listID
	return startWizardCmd(v.state, "Ersetzen", form, func() tea.Cmd {
		var sub domain.Product
		for _, p := range candidates {
			if p.ID == chosen {
				sub = p
			}
		}
		prev := v.session.Snapshot(pid)
		if err := v.session.Substitute(pid, sub); err != nil {
			return alertCmd("Ersetzen fehlgeschlagen", err)
		}
		return func() tea.Msg {
			err := app.Planning.SetSubstitution(state.ctx(), listID, pid, sub.ID)
			return substitutionSavedMsg{prev: prev, err: err}
		}
	})
}

func (v *planningView) clearSubstitution(row reconcile.Row) tea.Cmd {
	prev := v.session.Snapshot(row.ProductID())
	sub, ok := v.session.ClearSubstitution(row.ProductID())
	if !ok {
		return nil
	}
	app := v.state.App
	state := v.state
	listID := v.listID
	pid := row.ProductID()
	return func() tea.Msg {
		data, err := app.Planning.ClearSubstitution(state.ctx(), listID, pid, sub.ID)
		return substitutionClearedMsg{prev: prev, data: data, err: err}
	}
}

func (v *planningView) save() tea.Cmd {
	if v.saving {
		return nil
	}
	notes, items := v.session.Batch()
	v.saving = true
	app := v.state.App
	state := v.state
	listID := v.listID
	return func() tea.Msg {
		res, err := app.Planning.Save(state.ctx(), listID, notes, items)
		return planningSavedMsg{res: res, err: err}
	}
}

// handleMouse selects rows on click and hides a row swiped left past the
// dismiss threshold.
func (v *planningView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if v.session == nil {
		return nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.cursor--
		v.clampCursor()
	case msg.Button == tea.MouseButtonWheelDown:
		v.cursor++
		v.clampCursor()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		v.pressing = true
		v.pressX, v.pressY = msg.X, msg.Y
	case msg.Action == tea.MouseActionRelease && v.pressing:
		v.pressing = false
		idx := v.offset + v.pressY - planningFirstRow
		rows := v.rows()
		if v.pressY < planningFirstRow || idx < 0 || idx >= len(rows) {
			return nil
		}
		start := v.state.Cells.ToPixels(v.pressX, v.pressY)
		end := v.state.Cells.ToPixels(msg.X, msg.Y)
		if v.session.SwipeDismiss(rows[idx].ProductID(), start.X-end.X) {
			v.clampCursor()
			return nil
		}
		v.cursor = idx
		v.clampCursor()
	}
	return nil
}

// ── rendering ────────────────────────────────────────────────────────────────

const (
	colName   = 24
	colNeed   = 12
	colOnList = 12
	colAdd    = 16
)

func (v *planningView) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("Einkaufsliste #%d planen", v.listID)))
	if v.session != nil && v.session.Data.StartDate != "" {
		b.WriteString("  " + formatter.Dim(v.session.Data.StartDate+" – "+v.session.Data.EndDate))
	}
	b.WriteString("\n\n")

	switch {
	case v.loading && v.session == nil:
		return b.String() + formatter.Dim("Lade Zutaten…")
	case v.err != nil && v.session == nil:
		return b.String() + formatter.StyleRed.Render("Laden fehlgeschlagen: "+v.err.Error()) + "\n" + formatter.Dim("r: erneut versuchen")
	}

	b.WriteString(formatter.Dim(
		formatter.PadRight("Zutat", colName) + formatter.PadRight("Bedarf", colNeed) +
			formatter.PadRight("auf Liste", colOnList) + formatter.PadRight("hinzufügen", colAdd) + "Rezepte"))
	b.WriteString("\n")

	rows := v.rows()
	if len(rows) == 0 {
		b.WriteString(formatter.Dim("Keine Zutaten für diesen Zeitraum.") + "\n")
	}
	end := min(v.offset+v.visibleRows(), len(rows))
	for i := v.offset; i < end; i++ {
		line := v.renderRow(rows[i])
		if i == v.cursor {
			line = formatter.StyleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	notes, items := v.session.Batch()
	summary := fmt.Sprintf("%d Artikel bereit", len(items))
	if len(notes) > 0 {
		summary += fmt.Sprintf(", %d Notizen", len(notes))
	}
	if n := v.session.HiddenCount(); n > 0 {
		summary += formatter.Dim(fmt.Sprintf("  · %d ausgeblendet (H: einblenden)", n))
	}
	if v.saving {
		summary += "  " + formatter.Dim("speichert…")
	}
	b.WriteString("\n" + summary)
	return b.String()
}

func (v *planningView) renderRow(r reconcile.Row) string {
	name := formatter.Truncate(r.Name, colName-2)
	if r.Substitute != nil {
		name = lipgloss.NewStyle().Strikethrough(true).Render(formatter.Truncate(r.Name, 10)) +
			" → " + formatter.Truncate(r.Substitute.Name, colName-16)
	}
	need := "–"
	if a, ok := r.Ingredient.PrimaryNeed(); ok {
		need = amountLabel(a.Quantity.String(), a.Unit)
	}
	onList := formatter.Dim("–")
	if r.Ingredient.OnList != nil {
		onList = amountLabel(r.Ingredient.OnList.Quantity.String(), r.Ingredient.OnList.Unit)
	}
	add := formatter.Dim("·")
	if r.Adjustment != nil {
		add = amountLabel(r.Adjustment.Quantity, r.Adjustment.Unit)
		if _, valid := r.Adjustment.Amount(); valid {
			add = formatter.StyleGreen.Render(add)
		} else {
			add = formatter.StyleYellow.Render(add)
		}
		if r.Adjustment.Note != "" {
			add += " ✎"
		}
	}
	return padCell(name, colName) + padCell(need, colNeed) + padCell(onList, colOnList) +
		padCell(add, colAdd) + formatter.Dim(r.Sources)
}

func amountLabel(qty, unit string) string {
	return strings.TrimSpace(qty + " " + unit)
}

// padCell pads styled text to width visible cells.
func padCell(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s + " "
}
