package cooking

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrNoPlayer is returned when no audio player is configured.
var ErrNoPlayer = errors.New("no audio player configured")

// CommandFunc builds the player process.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Speaker plays spoken assistant replies through an external player such as
// "mpv --no-video". At most one playback runs; starting a new one stops the
// previous.
type Speaker struct {
	player  []string
	command CommandFunc
	log     *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpeaker parses the player command line. An empty player yields a
// Speaker whose Play returns ErrNoPlayer.
func NewSpeaker(player string, log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{
		player:  strings.Fields(player),
		command: exec.CommandContext,
		log:     log.Named("speaker"),
	}
}

// Enabled reports whether a player is configured.
func (s *Speaker) Enabled() bool { return len(s.player) > 0 }

// Play stops any running playback and starts the player on url.
func (s *Speaker) Play(url string) error {
	if !s.Enabled() {
		return ErrNoPlayer
	}
	s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	args := append(append([]string{}, s.player[1:]...), url)
	cmd := s.command(ctx, s.player[0], args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("starting player %s: %w", s.player[0], err)
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.mu.Unlock()

	go func() {
		defer close(done)
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			s.log.Warn("player exited", zap.Error(err))
		}
	}()
	return nil
}

// Playing reports whether a playback is running.
func (s *Speaker) Playing() bool {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Stop kills the running playback and waits for it to exit.
func (s *Speaker) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
