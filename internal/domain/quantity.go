package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a decimal amount as sent by the backend. The API serializes
// DECIMAL columns either as JSON numbers or as strings, so both are accepted.
type Quantity float64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*q = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding quantity: %w", err)
		}
		f, ok := ParseQuantity(s)
		if !ok && strings.TrimSpace(s) != "" {
			return fmt.Errorf("decoding quantity %q: not a number", s)
		}
		*q = Quantity(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decoding quantity: %w", err)
	}
	*q = Quantity(f)
	return nil
}

// String formats the quantity without trailing zeros.
func (q Quantity) String() string {
	return strconv.FormatFloat(float64(q), 'f', -1, 64)
}

// ParseQuantity parses user input, accepting a decimal comma.
func ParseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
