package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/alexanderramin/gabelguru/internal/appstate"
	"github.com/alexanderramin/gabelguru/internal/auth"
)

// tokenChangedMsg carries a token written by another process, e.g. a
// `gabelguru login` in a second terminal.
type tokenChangedMsg struct{ token string }

// runTUI starts the full-screen bubbletea program.
func runTUI(app *App) error {
	m := newAppModel(app)
	if app.Tokens != nil {
		m.state.setUser(app.Tokens.Token())
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if app.Tokens != nil {
		changes, err := app.Tokens.Watch(ctx)
		if err != nil {
			m.state.Log.Warn("token watch disabled", zap.Error(err))
		} else {
			go func() {
				for tok := range changes {
					p.Send(tokenChangedMsg{token: tok})
				}
			}()
		}
	}

	if app.Speaker != nil {
		defer app.Speaker.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// setUser updates the header identity from a bearer token. Opaque tokens
// show as anonymous; an empty token clears the user.
func (s *SharedState) setUser(token string) {
	if token == "" {
		s.dispatch(appstate.SetUser{User: nil})
		return
	}
	id, err := auth.Inspect(token)
	if err != nil {
		s.dispatch(appstate.SetUser{User: &appstate.User{Name: "angemeldet"}})
		return
	}
	u := &appstate.User{Name: id.Display()}
	if id.ExpiresAt != nil {
		u.ExpiresAt = *id.ExpiresAt
	}
	s.dispatch(appstate.SetUser{User: u})
}
