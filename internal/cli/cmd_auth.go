package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/gabelguru/internal/auth"
)

func newLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Zugangstoken speichern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("--token is required")
			}
			if id, err := auth.Inspect(token); err == nil && id.Expired(app.now()) {
				return errors.New("token is expired")
			}
			if err := app.Tokens.Save(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), whoami(app, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer-Token des Backends")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Gespeichertes Token löschen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tokens.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Abgemeldet.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Angemeldete Identität anzeigen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), whoami(app, app.now()))
			return nil
		},
	}
}
