package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
	"github.com/alexanderramin/gabelguru/internal/menuplan"
)

func newWeekCmd(app *App) *cobra.Command {
	var offset int
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Wochenplan ausgeben",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nav := menuplan.NewWeekNav(app.now())
			if date != "" {
				d, err := calendar.ParseDay(date, time.Local)
				if err != nil {
					return err
				}
				nav.JumpTo(d)
			}
			if offset != 0 {
				nav.ChangeWeek(offset)
			}

			stop := formatter.StartSpinner(spinnerOut(app, cmd), "Lade Woche...")
			data, err := app.Weeks.LoadWeek(cmd.Context(), nav.Start)
			stop()
			if err != nil {
				return fmt.Errorf("loading week: %w", err)
			}

			rows := menuplan.BuildWeek(data.Range, data.Menus, data.Lists, app.now())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeek(nav.Label(), rows, data.Offline))
			return nil
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Wochen relativ zur aktuellen (z.B. -1, 2)")
	cmd.Flags().StringVar(&date, "date", "", "Woche mit diesem Tag (YYYY-MM-DD)")

	return cmd
}

// spinnerOut returns stderr for interactive runs and nil otherwise so piped
// output stays clean.
func spinnerOut(app *App, cmd *cobra.Command) io.Writer {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return nil
	}
	return cmd.ErrOrStderr()
}
