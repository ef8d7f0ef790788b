package api

import (
	"time"

	"go.uber.org/zap"
)

// CallEvent records metadata about a single backend request.
type CallEvent struct {
	RequestID string
	Method    string
	Path      string
	Status    int
	Latency   time.Duration
	ErrorCode string
}

// Observer receives events about backend calls for logging.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an Observer that logs events through logger.
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger.Named("api")}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("request_id", event.RequestID),
		zap.String("method", event.Method),
		zap.String("path", event.Path),
		zap.Int("status", event.Status),
		zap.Int64("latency_ms", event.Latency.Milliseconds()),
	}
	if event.ErrorCode != "" {
		o.logger.Warn("api_call", append(fields, zap.String("error_code", event.ErrorCode))...)
		return
	}
	o.logger.Debug("api_call", fields...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
