package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/selector"
	"github.com/alexanderramin/gabelguru/internal/service"
)

type catalogLoadedMsg struct {
	data *service.CatalogData
	err  error
}

type selectorFocus int

const (
	focusSearch selectorFocus = iota
	focusManual
)

// selectorRecipeRow is the content row of the first recipe.
const selectorRecipeRow = 5

// selectorView is the meal selector for one (date, meal) slot. It emits a
// mealSelectedMsg and closes itself on any of the three submission paths.
type selectorView struct {
	state *SharedState
	sel   *selector.Selector

	search textinput.Model
	manual textinput.Model
	focus  selectorFocus

	loading bool
	offline bool
	err     error
	inline  string

	cursor int
	offset int
}

func newSelectorView(state *SharedState, date string, meal domain.MealType) *selectorView {
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "Rezept suchen"
	search.CharLimit = 80
	search.Focus()

	manual := textinput.New()
	manual.Prompt = ""
	manual.Placeholder = "z.B. Reste vom Vortag"
	manual.CharLimit = 120

	return &selectorView{
		state:   state,
		sel:     selector.New(date, meal),
		search:  search,
		manual:  manual,
		loading: true,
	}
}

func (v *selectorView) ID() ViewID    { return ViewSelector }
func (v *selectorView) Title() string { return "Auswahl" }

// CapturesInput is always true: both fields take free text.
func (v *selectorView) CapturesInput() bool { return true }

func (v *selectorView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "übernehmen")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Suche/Freitext")),
		key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "Kategorie")),
		key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "auswärts")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abbrechen")),
	}
}

func (v *selectorView) Init() tea.Cmd {
	app := v.state.App
	state := v.state
	return tea.Batch(textinput.Blink, func() tea.Msg {
		data, err := app.Recipes.Catalog(state.ctx())
		return catalogLoadedMsg{data: data, err: err}
	})
}

// submit closes the selector and hands the selection to the week view.
func (v *selectorView) submit(sel domain.MenuSelection) tea.Cmd {
	msg := mealSelectedMsg{date: v.sel.Date, meal: v.sel.MealType, sel: sel}
	return tea.Sequence(popView(), func() tea.Msg { return msg })
}

func (v *selectorView) filtered() []domain.Recipe {
	return v.sel.Filtered()
}

func (v *selectorView) visibleRows() int {
	h := v.state.ContentHeight() - selectorRecipeRow - 4
	if h < 3 {
		return 3
	}
	return h
}

func (v *selectorView) clampCursor() {
	n := len(v.filtered())
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

func (v *selectorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.offline = msg.data.Offline
		v.sel.SetCatalog(msg.data.Recipes)
		v.clampCursor()
		return v, nil

	case tea.MouseMsg:
		return v, v.handleMouse(msg)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	var cmd tea.Cmd
	if v.focus == focusSearch {
		v.search, cmd = v.search.Update(msg)
	} else {
		v.manual, cmd = v.manual.Update(msg)
	}
	return v, cmd
}

func (v *selectorView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return popView()
	case "tab", "shift+tab":
		v.inline = ""
		if v.focus == focusSearch {
			v.focus = focusManual
			v.search.Blur()
			return v.manual.Focus()
		}
		v.focus = focusSearch
		v.manual.Blur()
		return v.search.Focus()
	case "ctrl+n":
		v.sel.CycleCategory(1)
		v.clampCursor()
		return nil
	case "ctrl+p":
		v.sel.CycleCategory(-1)
		v.clampCursor()
		return nil
	case "ctrl+o":
		return v.submit(v.sel.SubmitEatingOut())
	case "up":
		v.cursor--
		v.clampCursor()
		return nil
	case "down":
		v.cursor++
		v.clampCursor()
		return nil
	case "enter":
		if v.focus == focusManual {
			sel, err := v.sel.SubmitManual()
			if err != nil {
				v.inline = "Bitte einen Text eingeben."
				return nil
			}
			return v.submit(sel)
		}
		recipes := v.filtered()
		if v.cursor < len(recipes) {
			return v.submit(selector.RecipeSelection(recipes[v.cursor]))
		}
		return nil
	}

	var cmd tea.Cmd
	if v.focus == focusSearch {
		v.search, cmd = v.search.Update(msg)
		v.sel.SetSearch(v.search.Value())
		v.cursor = 0
		v.clampCursor()
	} else {
		v.manual, cmd = v.manual.Update(msg)
		v.sel.SetManual(v.manual.Value())
		v.inline = ""
	}
	return cmd
}

func (v *selectorView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.cursor--
		v.clampCursor()
	case msg.Button == tea.MouseButtonWheelDown:
		v.cursor++
		v.clampCursor()
	case msg.Action == tea.MouseActionRelease:
		switch {
		case msg.Y == 3:
			v.sel.CycleCategory(1)
			v.clampCursor()
		case msg.Y >= selectorRecipeRow:
			idx := v.offset + msg.Y - selectorRecipeRow
			recipes := v.filtered()
			if msg.Y-selectorRecipeRow < v.visibleRows() && idx < len(recipes) {
				return v.submit(selector.RecipeSelection(recipes[idx]))
			}
		}
	}
	return nil
}

func (v *selectorView) View() string {
	var b strings.Builder
	day := v.sel.Date
	if d, err := calendar.ParseDay(v.sel.Date, nil); err == nil {
		day = formatter.DayLabel(d)
	}
	b.WriteString(formatter.Header(fmt.Sprintf("%s · %s", day, v.sel.MealType.Label())))
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Suche", v.focus == focusSearch) + v.search.View() + "\n")
	b.WriteString(formatter.Dim("Kategorie: ") + categoryChips(v.sel.Categories(), v.sel.Category()) + "\n")
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(formatter.Dim("Lade Rezepte…") + "\n")
	case v.err != nil:
		b.WriteString(formatter.StyleRed.Render("Rezepte nicht verfügbar: "+v.err.Error()) + "\n")
	default:
		recipes := v.filtered()
		if len(recipes) == 0 {
			b.WriteString(formatter.Dim("Keine Rezepte gefunden.") + "\n")
		}
		end := min(v.offset+v.visibleRows(), len(recipes))
		for i := v.offset; i < end; i++ {
			r := recipes[i]
			line := "  " + r.Title
			if r.Category != "" {
				line += "  " + formatter.Dim(r.Category)
			}
			if i == v.cursor && v.focus == focusSearch {
				line = formatter.StyleSelected.Render("› " + strings.TrimPrefix(line, "  "))
			}
			b.WriteString(line + "\n")
		}
		if v.offline {
			b.WriteString(formatter.StyleYellow.Render("offline: zwischengespeicherter Katalog") + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(fieldLabel("Freitext", v.focus == focusManual) + v.manual.View() + "\n")
	if v.inline != "" {
		b.WriteString(formatter.StyleRed.Render(v.inline) + "\n")
	}
	return b.String()
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return formatter.StyleHeader.Render(label+": ")
	}
	return formatter.Dim(label + ": ")
}

func categoryChips(cats []string, active string) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		label := c
		if c == selector.AllCategories {
			label = "Alle"
		}
		if c == active {
			parts[i] = formatter.StyleSelected.Render(" " + label + " ")
		} else {
			parts[i] = formatter.Dim(label)
		}
	}
	return strings.Join(parts, " ")
}
