package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gabelguru/internal/cli/formatter"
)

func newListsCmd(app *App) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Einkaufslisten ausgeben",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			stop := formatter.StartSpinner(spinnerOut(app, cmd), "Lade Listen...")
			defer stop()

			if id > 0 {
				list, err := app.Lists.Get(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("loading list %d: %w", id, err)
				}
				stop()
				fmt.Fprint(out, formatter.ListTree(*list))
				return nil
			}

			data, err := app.Lists.All(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading lists: %w", err)
			}
			stop()
			if data.Offline {
				fmt.Fprintln(out, formatter.StyleYellow.Render("offline: zwischengespeicherte Daten"))
			}
			fmt.Fprint(out, formatter.FormatLists(data.Lists))
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "nur diese Liste mit Artikeln anzeigen")

	return cmd
}
