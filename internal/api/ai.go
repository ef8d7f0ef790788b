package api

import (
	"context"
	"net/http"
	"net/url"
)

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is sent to the cooking assistant.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Context  string        `json:"context,omitempty"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Reply string `json:"reply"`
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatReply, error) {
	var out ChatReply
	if err := c.do(ctx, http.MethodPost, "/ai/chat", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SpeakURL returns the streaming text-to-speech URL for text. Audio players
// cannot send headers, so the token travels as a query parameter.
func (c *Client) SpeakURL(text string) string {
	q := url.Values{}
	q.Set("text", text)
	if tok := c.tokens.Token(); tok != "" {
		q.Set("token", tok)
	}
	return c.endpoint("/ai/speak", q)
}
