package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/game"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func playedSession(t *testing.T) Session {
	t.Helper()
	round, err := game.NewRound("crane")
	require.NoError(t, err)
	round, _, err = game.SubmitGuess(round, "trace", nil)
	require.NoError(t, err)
	return Session{
		ID:         "s1",
		Owner:      "u1",
		Difficulty: "hard",
		Round:      round,
		StartedAt:  time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

// runStoreContract exercises behavior every Store must share.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	want := playedSession(t)
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, want.Owner, got.Owner)
	assert.Equal(t, want.Difficulty, got.Difficulty)
	assert.Equal(t, want.Round, got.Round)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))

	// Save replaces
	next, _, err := game.SubmitGuess(got.Round, "crane", nil)
	require.NoError(t, err)
	got.Round = next
	require.NoError(t, s.Save(ctx, got))
	got, err = s.Get(ctx, want.ID)
	require.NoError(t, err)
	assert.Equal(t, game.Won, got.Round.Status)
	assert.Len(t, got.Round.History, 2)

	require.NoError(t, s.Delete(ctx, want.ID))
	_, err = s.Get(ctx, want.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, want.ID), "deleting twice is fine")
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestMemoryStore_CopiesHistory(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	sess := playedSession(t)
	require.NoError(t, s.Save(ctx, sess))

	sess.Round.History[0].Guess = "mutated"
	got, err := s.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "trace", got.Round.History[0].Guess)
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newMiniredis(t)
	runStoreContract(t, NewRedis(client))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	mr, client := newMiniredis(t)
	s := NewRedis(client, WithPrefix("test:"), WithTTL(time.Minute))
	ctx := context.Background()

	sess := playedSession(t)
	require.NoError(t, s.Save(ctx, sess))
	assert.True(t, mr.Exists("test:s1"))
	assert.Equal(t, time.Minute, mr.TTL("test:s1"))

	mr.FastForward(2 * time.Minute)
	_, err := s.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := newMiniredis(t)
	require.NoError(t, mr.Set(DefaultPrefix+"bad", "{"))
	_, err := NewRedis(client).Get(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
