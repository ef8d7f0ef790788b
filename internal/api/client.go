// Package api is the HTTP client for the GabelGuru REST backend. It attaches
// the base URL and bearer token to every request and maps failures onto the
// sentinel errors in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token. An empty token sends the
// request unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource with a fixed token.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Config holds the connection settings for a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	base     *url.URL
	tokens   TokenSource
	http     *http.Client
	timeout  time.Duration
	observer Observer
}

// New creates a Client. A nil observer discards call events.
func New(cfg Config, tokens TokenSource, observer Observer) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", cfg.BaseURL)
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:    base,
		tokens:  tokens,
		timeout: timeout,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}, nil
}

// endpoint resolves a path (and optional query) against the base URL.
func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs a JSON request. in may be nil; out may be nil to discard the
// response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	start := time.Now()
	reqID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status, err := c.roundTrip(ctx, reqID, method, path, query, in, out)
	if err != nil && ctx.Err() != nil && !errors.Is(err, ErrUnauthorized) {
		err = fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
	}

	c.observer.OnCallComplete(CallEvent{
		RequestID: reqID,
		Method:    method,
		Path:      path,
		Status:    status,
		Latency:   time.Since(start),
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, reqID, method, path string, query url.Values, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return 0, fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
		}
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: serverMessage(respBody),
			kind:    classify(resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

// serverMessage extracts {"error": "..."} or {"message": "..."} from an error
// body, falling back to the raw text.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "…"
	}
	return text
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func idPath(format string, ids ...int64) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}
