package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates a missing, expired or rejected token.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrServer indicates the backend failed to handle the request.
	ErrServer = errors.New("server error")

	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")
)

// StatusError carries the HTTP status and server message of a failed call.
// It unwraps to one of the sentinel errors above when one applies.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no message"
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
}

func (e *StatusError) Unwrap() error { return e.kind }

func classify(status int) error {
	switch {
	case status == 401 || status == 403:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status >= 500:
		return ErrServer
	default:
		return nil
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrServer):
		return "SERVER"
	default:
		return "UNKNOWN"
	}
}
