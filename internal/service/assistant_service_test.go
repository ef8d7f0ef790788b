package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantService_AskSendsHistoryAndContext(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetChatReply("  Etwa **10 Minuten**.  ")
	svc := NewAssistantService(env.client)

	history := []api.ChatMessage{
		{Role: "user", Content: "Wie lange kochen?"},
	}
	reply, err := svc.Ask(context.Background(), history, "Rezept: Nudeln")
	require.NoError(t, err)
	assert.Equal(t, "Etwa **10 Minuten**.", reply)

	calls := env.backend.CallsTo("POST", "/ai/chat")
	require.Len(t, calls, 1)
	var req api.ChatRequest
	require.NoError(t, json.Unmarshal(calls[0].Body, &req))
	assert.Equal(t, "Rezept: Nudeln", req.Context)
	assert.Equal(t, history, req.Messages)
}

func TestAssistantService_EmptyQuestion(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAssistantService(env.client)

	_, err := svc.Ask(context.Background(), []api.ChatMessage{{Role: "user", Content: "   "}}, "")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, env.backend.Calls())
}

func TestAssistantService_SpeakURLCarriesToken(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAssistantService(env.client)

	u := svc.SpeakURL("Hallo Welt")
	assert.Contains(t, u, "/ai/speak?")
	assert.Contains(t, u, "token=tok")
	assert.Contains(t, u, "text=Hallo+Welt")
}
