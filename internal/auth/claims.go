package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the client can learn from its token without asking the
// server. Signatures are not verified here; the backend does that.
type Identity struct {
	Subject   string
	Name      string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry before now.
func (i Identity) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Display returns the best human label for the identity.
func (i Identity) Display() string {
	if i.Name != "" {
		return i.Name
	}
	if i.Subject != "" {
		return i.Subject
	}
	return "unknown"
}

// Inspect decodes the claims of a JWT bearer token. Opaque (non-JWT) tokens
// return an error; callers treat them as valid but anonymous.
func Inspect(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("decoding token: %w", err)
	}

	var id Identity
	id.Subject, _ = claims.GetSubject()
	for _, k := range []string{"name", "username", "email"} {
		if v, ok := claims[k].(string); ok && v != "" {
			id.Name = v
			break
		}
	}
	if id.Subject == "" {
		if v, ok := claims["id"].(float64); ok {
			id.Subject = fmt.Sprintf("%.0f", v)
		}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Identity{}, fmt.Errorf("reading token expiry: %w", err)
	}
	if exp != nil {
		t := exp.Time
		id.ExpiresAt = &t
	}
	return id, nil
}
