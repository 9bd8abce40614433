package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/db"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewRegistry(conn)
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"bob", "Alice_99", "abcdefghijklmnopqrstuvwx"} {
		assert.NoError(t, ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "ab", "abcdefghijklmnopqrstuvwxy", "has space", "dash-ed", "émile"} {
		assert.ErrorIs(t, ValidateUsername(bad), ErrInvalidUsername, bad)
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := newRegistry(t)
	r.now = func() time.Time { return time.Date(2025, 4, 1, 8, 30, 0, 0, time.UTC) }
	ctx := context.Background()

	u, err := r.Register(ctx, "  Alice_1 ")
	require.NoError(t, err)
	assert.Equal(t, "Alice_1", u.Username)
	assert.NotEmpty(t, u.ID)

	got, err := r.ByUsername(ctx, "alice_1")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got, err = r.ByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = r.Register(ctx, "ALICE_1")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = r.ByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.ByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	r := newRegistry(t)
	_, err := r.Register(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInvalidUsername)
}
