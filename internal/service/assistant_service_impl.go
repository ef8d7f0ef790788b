package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gabelguru/internal/api"
)

// ErrEmptyQuestion is returned when the last user turn has no text.
var ErrEmptyQuestion = errors.New("empty question")

type assistantService struct {
	backend  Backend
	observer UseCaseObserver
}

func NewAssistantService(backend Backend, observers ...UseCaseObserver) AssistantService {
	return &assistantService{backend: backend, observer: useCaseObserverOrNoop(observers)}
}

func (s *assistantService) Ask(ctx context.Context, history []api.ChatMessage, contextText string) (reply string, err error) {
	fields := map[string]any{"turns": len(history)}
	defer observe(ctx, s.observer, "assistant-chat", time.Now(), fields, &err)

	if len(history) == 0 || strings.TrimSpace(history[len(history)-1].Content) == "" {
		return "", ErrEmptyQuestion
	}
	out, err := s.backend.Chat(ctx, api.ChatRequest{Messages: history, Context: contextText})
	if err != nil {
		return "", fmt.Errorf("asking assistant: %w", err)
	}
	return strings.TrimSpace(out.Reply), nil
}

func (s *assistantService) SpeakURL(text string) string {
	return s.backend.SpeakURL(text)
}
