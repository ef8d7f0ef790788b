package repository

import (
	"encoding/json"
	"fmt"
	"time"
)

// parseFetchedAt parses a stored RFC3339 timestamp. Unparseable values yield
// the zero time so a corrupt row still serves its payload.
func parseFetchedAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// formatFetchedAt stores t in UTC, defaulting to now.
func formatFetchedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func encodePayload(what string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", what, err)
	}
	return string(data), nil
}

func decodePayload(what, raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decoding %s: %w", what, err)
	}
	return nil
}
