package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "token")
	s := NewStore(path, "")

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Save("  abc.def.ghi \n"))
	assert.Equal(t, "abc.def.ghi", s.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	fresh := NewStore(path, "")
	tok, err := fresh.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, fresh.Clear())
	assert.Empty(t, fresh.Token())
	_, err = fresh.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestStore_OverrideWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("from-file"), 0o600))

	s := NewStore(path, "from-env")
	tok, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok)
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signed(t, jwt.MapClaims{"id": float64(7), "username": "anna", "exp": exp.Unix()})

	id, err := Inspect(tok)
	require.NoError(t, err)
	assert.Equal(t, "7", id.Subject)
	assert.Equal(t, "anna", id.Display())
	require.NotNil(t, id.ExpiresAt)
	assert.True(t, id.ExpiresAt.Equal(exp))
	assert.False(t, id.Expired(time.Now()))
	assert.True(t, id.Expired(exp.Add(time.Second)))
}

func TestInspect_OpaqueToken(t *testing.T) {
	_, err := Inspect("not-a-jwt")
	assert.Error(t, err)
}

func TestWatch_ReportsRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o600))
	s := NewStore(path, "")
	_, err := s.Load()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := s.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))

	// A rewrite can surface as several events; the first may observe a
	// truncated file.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case tok := <-ch:
			if tok == "second" {
				assert.Equal(t, "second", s.Token())
				return
			}
		case <-deadline:
			t.Fatal("no token change observed")
		}
	}
}
