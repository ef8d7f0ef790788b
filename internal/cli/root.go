package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/auth"
	"github.com/alexanderramin/gabelguru/internal/config"
	"github.com/alexanderramin/gabelguru/internal/cooking"
	"github.com/alexanderramin/gabelguru/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Weeks     service.WeekPlanService
	Menus     service.MenuService
	Lists     service.ListService
	Planning  service.PlanningService
	Recipes   service.RecipeService
	Assistant service.AssistantService

	Tokens  *auth.Store
	Speaker *cooking.Speaker

	Config config.Config
	Log    *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. The root command
	// starts the TUI only then.
	IsInteractive func() bool
	// HistoryPath overrides the command bar history file.
	HistoryPath string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "gabelguru" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// TUI on an interactive terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gabelguru",
		Short:         "Wochenplan, Einkaufslisten und Kochmodus im Terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("kein Terminal erkannt; nutze einen Unterbefehl, z.B. 'gabelguru week'")
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newWeekCmd(app),
		newListsCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
	)

	return root
}
