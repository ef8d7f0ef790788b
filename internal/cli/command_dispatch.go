package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/gabelguru/internal/appstate"
	"github.com/alexanderramin/gabelguru/internal/auth"
	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// weekJumpMsg asks the week view to show another week. Exactly one of
// Offset (relative) or Date (absolute) is used.
type weekJumpMsg struct {
	Offset int
	Date   time.Time
}

// popToRootMsg unwinds the stack back to the week view.
type popToRootMsg struct{}

var commandNames = []string{
	"week", "today", "dashboard", "lists", "plan", "cook",
	"mode", "theme", "whoami", "help", "clear", "quit",
}

// commandArgs lists completions for the first argument.
var commandArgs = map[string][]string{
	"week":  {"+1", "-1", "today"},
	"mode":  {"view", "create", "edit", "delete"},
	"theme": {"dark", "light"},
}

func allCommandNames() []string { return commandNames }

// executeCommand dispatches a text command and returns a tea.Cmd.
// Commands may return cmdOutputMsg for display, navigation messages
// for view transitions, or quitMsg for exit.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitShellArgs(input)
	if err != nil {
		return outputCmd(shellError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "week", "w":
		return c.cmdWeek(args)
	case "today":
		return c.cmdWeek([]string{"today"})
	case "dashboard", "calendar":
		return c.openRoute(func() View { return newDashboardView(c.state) }, ViewDashboard)
	case "lists":
		return c.cmdLists()
	case "plan":
		return c.cmdPlan(args)
	case "cook":
		return c.cmdCook(args)
	case "mode":
		return c.cmdMode(args)
	case "theme":
		return c.cmdTheme(args)
	case "whoami":
		return outputCmd(whoami(c.state.App, c.state.Now()))
	case "help", "?":
		return outputCmd(formatHelp())
	case "clear":
		return nil
	case "exit", "quit", "q":
		return func() tea.Msg { return quitMsg{} }
	default:
		return outputCmd(fmt.Sprintf("Unbekannter Befehl: %s. 'help' zeigt alle Befehle.", cmd))
	}
}

// openRoute pushes a route view, or does nothing when it is already on top.
func (c *commandBar) openRoute(build func() View, id ViewID) tea.Cmd {
	c.Blur()
	return func() tea.Msg {
		return openRouteMsg{build: build, id: id}
	}
}

// openRouteMsg pushes a route view unless one with the same id is on top.
type openRouteMsg struct {
	build func() View
	id    ViewID
}

func (c *commandBar) cmdWeek(args []string) tea.Cmd {
	c.Blur()
	msg := weekJumpMsg{}
	if len(args) > 0 {
		arg := strings.ToLower(args[0])
		switch {
		case arg == "today" || arg == "heute":
			msg.Date = c.state.Now()
		case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
			n, err := strconv.Atoi(arg)
			if err != nil {
				return outputCmd(shellError(fmt.Errorf("ungültiger Wochenversatz %q", args[0])))
			}
			msg.Offset = n
		default:
			d, err := calendar.ParseDay(arg, time.Local)
			if err != nil {
				return outputCmd(shellError(fmt.Errorf("Datum als YYYY-MM-DD oder +N/-N angeben")))
			}
			msg.Date = d
		}
	}
	return tea.Sequence(
		func() tea.Msg { return popToRootMsg{} },
		func() tea.Msg { return msg },
	)
}

func (c *commandBar) cmdLists() tea.Cmd {
	app := c.state.App
	state := c.state
	return func() tea.Msg {
		data, err := app.Lists.All(state.ctx())
		if err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		out := formatter.FormatLists(data.Lists)
		if data.Offline {
			out = formatter.StyleYellow.Render("offline: zwischengespeicherte Daten") + "\n" + out
		}
		return cmdOutputMsg{output: out}
	}
}

func (c *commandBar) cmdPlan(args []string) tea.Cmd {
	if len(args) == 0 {
		return outputCmd(formatter.StyleYellow.Render("Aufruf: plan <listen-id>"))
	}
	id, err := parseID(args[0])
	if err != nil {
		return outputCmd(shellError(err))
	}
	c.Blur()
	return pushView(newPlanningView(c.state, id))
}

func (c *commandBar) cmdCook(args []string) tea.Cmd {
	if len(args) == 0 {
		return outputCmd(formatter.StyleYellow.Render("Aufruf: cook <rezept-id>"))
	}
	id, err := parseID(args[0])
	if err != nil {
		return outputCmd(shellError(err))
	}
	c.Blur()
	return pushView(newCookingView(c.state, id))
}

func (c *commandBar) cmdMode(args []string) tea.Cmd {
	if len(args) == 0 {
		c.state.dispatch(appstate.CycleEditMode{})
		return outputCmd("Modus: " + formatter.ModeBadge(c.state.EditMode()))
	}
	mode := domain.EditMode(strings.ToLower(args[0]))
	for _, m := range domain.EditModes {
		if m == mode {
			c.state.dispatch(appstate.SetEditMode{Mode: m})
			return outputCmd("Modus: " + formatter.ModeBadge(m))
		}
	}
	return outputCmd(shellError(fmt.Errorf("unbekannter Modus %q (view, create, edit, delete)", args[0])))
}

func (c *commandBar) cmdTheme(args []string) tea.Cmd {
	if len(args) == 0 {
		c.state.dispatch(appstate.ToggleTheme{})
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "dark":
		c.state.dispatch(appstate.SetTheme{Theme: appstate.ThemeDark})
	case "light":
		c.state.dispatch(appstate.SetTheme{Theme: appstate.ThemeLight})
	default:
		return outputCmd(shellError(fmt.Errorf("unbekanntes Theme %q (dark, light)", args[0])))
	}
	return nil
}

// whoami describes the signed-in identity.
func whoami(app *App, now time.Time) string {
	if app.Tokens == nil || app.Tokens.Token() == "" {
		return formatter.StyleYellow.Render("Nicht angemeldet.") + " " + formatter.Dim("gabelguru login --token <token>")
	}
	id, err := auth.Inspect(app.Tokens.Token())
	if err != nil {
		return "Angemeldet " + formatter.Dim("(Token ohne Benutzerangaben)")
	}
	line := "Angemeldet als " + formatter.StyleGreen.Render(id.Display())
	switch {
	case id.ExpiresAt == nil:
	case id.Expired(now):
		line += "  " + formatter.StyleRed.Render("abgelaufen")
	default:
		line += "  " + formatter.Dim("gültig bis "+id.ExpiresAt.Local().Format("02.01.2006 15:04"))
	}
	return line
}

func formatHelp() string {
	rows := [][]string{
		{"week [+N|-N|today|YYYY-MM-DD]", "Wochenplan anzeigen"},
		{"dashboard", "Kalender mit Einkaufslisten"},
		{"lists", "alle Einkaufslisten"},
		{"plan <id>", "Zutaten für eine Liste planen"},
		{"cook <id>", "Kochmodus für ein Rezept"},
		{"mode [view|create|edit|delete]", "Bearbeitungsmodus setzen"},
		{"theme [dark|light]", "Farbschema wechseln"},
		{"whoami", "Anmeldung anzeigen"},
		{"quit", "beenden"},
	}
	return formatter.Header("Befehle") + "\n" + formatter.RenderTable([]string{"Befehl", "Beschreibung"}, rows)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("ungültige ID %q", s)
	}
	return id, nil
}

// shellError formats an error for the output area.
func shellError(err error) string {
	return formatter.StyleRed.Render("Fehler: ") + err.Error()
}

// ── argument parsing ─────────────────────────────────────────────────────────

// splitShellArgs splits input like a POSIX shell would for simple cases:
// whitespace separates words, quotes group them and backslash escapes.
func splitShellArgs(input string) ([]string, error) {
	var parts []string
	var cur strings.Builder

	inSingle := false
	inDouble := false
	escaped := false
	tokenStarted := false

	flush := func() {
		parts = append(parts, cur.String())
		cur.Reset()
		tokenStarted = false
	}

	for _, r := range input {
		if escaped {
			cur.WriteRune(r)
			tokenStarted = true
			escaped = false
			continue
		}

		if inSingle {
			if r == '\'' {
				inSingle = false
			} else {
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		if inDouble {
			switch r {
			case '"':
				inDouble = false
			case '\\':
				escaped = true
			default:
				cur.WriteRune(r)
			}
			tokenStarted = true
			continue
		}

		switch r {
		case '\\':
			escaped = true
			tokenStarted = true
		case '\'':
			inSingle = true
			tokenStarted = true
		case '"':
			inDouble = true
			tokenStarted = true
		case ' ', '\t', '\n', '\r':
			if tokenStarted {
				flush()
			}
		default:
			cur.WriteRune(r)
			tokenStarted = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quoted string")
	}
	if tokenStarted {
		flush()
	}

	return parts, nil
}
