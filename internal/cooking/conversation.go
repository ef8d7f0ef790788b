package cooking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/alexanderramin/gabelguru/internal/api"
)

var ErrAwaitingReply = errors.New("assistant is still answering")

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is the multi-turn assistant chat of a cooking session.
type Conversation struct {
	turns   []api.ChatMessage
	pending bool
	lastErr error
}

// Ask appends a user turn and returns the history to send. Only one
// question may be in flight.
func (c *Conversation) Ask(question string) ([]api.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.New("empty question")
	}
	if c.pending {
		return nil, ErrAwaitingReply
	}
	c.turns = append(c.turns, api.ChatMessage{Role: RoleUser, Content: question})
	c.pending = true
	c.lastErr = nil
	return c.History(), nil
}

// Answer records the assistant's reply to the pending question.
func (c *Conversation) Answer(reply string) {
	c.pending = false
	c.turns = append(c.turns, api.ChatMessage{Role: RoleAssistant, Content: reply})
}

// Fail ends the pending question without a reply. The question stays in the
// history so the user can see what failed.
func (c *Conversation) Fail(err error) {
	c.pending = false
	c.lastErr = err
}

func (c *Conversation) Pending() bool { return c.pending }

func (c *Conversation) Err() error { return c.lastErr }

// History returns a copy of all turns.
func (c *Conversation) History() []api.ChatMessage {
	out := make([]api.ChatMessage, len(c.turns))
	copy(out, c.turns)
	return out
}

// LastReply returns the most recent assistant turn.
func (c *Conversation) LastReply() (string, bool) {
	for i := len(c.turns) - 1; i >= 0; i-- {
		if c.turns[i].Role == RoleAssistant {
			return c.turns[i].Content, true
		}
	}
	return "", false
}

// Reset clears the chat.
func (c *Conversation) Reset() {
	c.turns = nil
	c.pending = false
	c.lastErr = nil
}

// Markdown renders the transcript as markdown.
func (c *Conversation) Markdown() string {
	var b strings.Builder
	for _, t := range c.turns {
		switch t.Role {
		case RoleUser:
			fmt.Fprintf(&b, "**Du:** %s\n\n", t.Content)
		default:
			fmt.Fprintf(&b, "%s\n\n", t.Content)
		}
	}
	if c.pending {
		b.WriteString("_denkt nach…_\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Renderer turns markdown into styled terminal text.
type Renderer struct {
	dark  bool
	width int
	term  *glamour.TermRenderer
}

// NewRenderer returns a markdown renderer for the given theme. Width below
// 20 falls back to 80 columns.
func NewRenderer(dark bool, width int) (*Renderer, error) {
	if width < 20 {
		width = 80
	}
	style := "light"
	if dark {
		style = "dark"
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{dark: dark, width: width, term: term}, nil
}

// Resize rebuilds the renderer when the width changes.
func (r *Renderer) Resize(width int) error {
	if width == r.width {
		return nil
	}
	next, err := NewRenderer(r.dark, width)
	if err != nil {
		return err
	}
	*r = *next
	return nil
}

// Render renders md, returning the raw text when styling fails.
func (r *Renderer) Render(md string) string {
	if r == nil || r.term == nil {
		return md
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
