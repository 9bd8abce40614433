package stats

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/internal/db"
)

func newSQLStore(t *testing.T) (*SQLStore, *sql.DB) {
	t.Helper()
	conn, err := db.Open(db.Memory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewSQLStore(conn), conn
}

func TestSQLStore_RecordStreaks(t *testing.T) {
	s, _ := newSQLStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	results := []bool{true, true, true, false, true}
	for i, won := range results {
		require.NoError(t, s.Record(ctx, Outcome{
			UserID: "u1", Secret: "crane", Won: won, GuessesUsed: 3,
			Difficulty: "medium", PlayedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	agg, err := s.Aggregates(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Aggregates{TotalGames: 5, TotalWins: 4, TotalLosses: 1, CurrentStreak: 1, MaxStreak: 3}, agg)
	assert.InDelta(t, 80.0, agg.WinRate(), 0.001)

	other, err := s.Aggregates(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, other)
}

func TestSQLStore_RecordRejectsInvalid(t *testing.T) {
	s, _ := newSQLStore(t)
	err := s.Record(context.Background(), Outcome{UserID: "u1", Secret: "crane", Won: true})
	assert.ErrorIs(t, err, ErrInvalidOutcome)
	err = s.Record(context.Background(), Outcome{UserID: "u1", Secret: "crane", GuessesUsed: 7})
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestSQLStore_HistoryNewestFirst(t *testing.T) {
	s, _ := newSQLStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	for i, w := range []string{"first", "secnd", "third"} {
		require.NoError(t, s.Record(ctx, Outcome{
			UserID: "u1", Secret: w, Won: true, GuessesUsed: i + 1,
			PlayedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, s.Record(ctx, Outcome{UserID: "u2", Secret: "other", GuessesUsed: 6}))

	h, err := s.History(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "third", h[0].Secret)
	assert.Equal(t, "secnd", h[1].Secret)
	assert.True(t, h[0].PlayedAt.Equal(base.Add(2*time.Second)))

	h, err = s.History(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, h, 3)
}

func TestSQLStore_HistoryLimitIsClamped(t *testing.T) {
	s, _ := newSQLStore(t)
	ctx := context.Background()

	for i := 0; i < MaxHistoryLimit+3; i++ {
		require.NoError(t, s.Record(ctx, Outcome{UserID: "u1", Secret: "crane", GuessesUsed: 6}))
	}

	h, err := s.History(ctx, "u1", 1<<40)
	require.NoError(t, err)
	assert.Len(t, h, MaxHistoryLimit)

	h, err = s.History(ctx, "nobody", 1<<40)
	require.NoError(t, err)
	assert.Empty(t, h)
	assert.NotNil(t, h)
}

func TestSQLStore_Distribution(t *testing.T) {
	s, _ := newSQLStore(t)
	ctx := context.Background()

	for _, o := range []Outcome{
		{UserID: "u1", Secret: "crane", Won: true, GuessesUsed: 3},
		{UserID: "u1", Secret: "slate", Won: true, GuessesUsed: 3},
		{UserID: "u1", Secret: "jazzy", Won: true, GuessesUsed: 6},
		{UserID: "u1", Secret: "fjord", Won: false, GuessesUsed: 6},
	} {
		require.NoError(t, s.Record(ctx, o))
	}

	d, err := s.Distribution(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Distribution{0, 0, 2, 0, 0, 1}, d)
}

func TestSQLStore_Import(t *testing.T) {
	s, _ := newSQLStore(t)
	ctx := context.Background()

	local := Aggregates{TotalGames: 12, TotalWins: 9, TotalLosses: 3, CurrentStreak: 2, MaxStreak: 5}
	ok, err := s.Import(ctx, "u1", local)
	require.NoError(t, err)
	assert.True(t, ok)

	// a second import never overwrites
	ok, err = s.Import(ctx, "u1", Aggregates{TotalGames: 1, TotalWins: 1})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Import(ctx, "u2", Aggregates{})
	require.NoError(t, err)
	assert.False(t, ok, "nothing to import")

	agg, err := s.Aggregates(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, local, agg)

	// later rounds continue from the imported totals
	require.NoError(t, s.Record(ctx, Outcome{UserID: "u1", Secret: "crane", Won: true, GuessesUsed: 2}))
	agg, err = s.Aggregates(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 13, agg.TotalGames)
	assert.Equal(t, 3, agg.CurrentStreak)
}

func TestSQLStore_Leaderboard(t *testing.T) {
	s, conn := newSQLStore(t)
	ctx := context.Background()

	seed := map[string]Aggregates{
		"ann": {TotalGames: 5, TotalWins: 4, TotalLosses: 1},    // 80%
		"bob": {TotalGames: 10, TotalWins: 8, TotalLosses: 2},   // 80%, more games
		"cat": {TotalGames: 6, TotalWins: 6, MaxStreak: 6},      // 100%
		"dan": {TotalGames: 4, TotalWins: 4},                    // too few games
		"eve": {TotalGames: 20, TotalWins: 10, TotalLosses: 10}, // 50%
	}
	for name, agg := range seed {
		_, err := conn.Exec(`INSERT INTO users (id, username, created_at) VALUES (?, ?, 'now')`, "id-"+name, name)
		require.NoError(t, err)
		_, err = s.Import(ctx, "id-"+name, agg)
		require.NoError(t, err)
	}
	// aggregates without a registered user are not ranked
	_, err := s.Import(ctx, "anon-1", Aggregates{TotalGames: 50, TotalWins: 50})
	require.NoError(t, err)

	rows, err := s.Leaderboard(ctx, 0, 0)
	require.NoError(t, err)

	var names []string
	for _, r := range rows {
		names = append(names, r.Username)
	}
	assert.Equal(t, []string{"cat", "bob", "ann", "eve"}, names)
	assert.InDelta(t, 100.0, rows[0].WinRate, 0.001)

	rows, err = s.Leaderboard(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSQLStore_LeaderboardTiesAreDeterministic(t *testing.T) {
	s, conn := newSQLStore(t)
	ctx := context.Background()

	seed := []struct {
		name string
		agg  Aggregates
	}{
		{"zed", Aggregates{TotalGames: 5, TotalWins: 4, TotalLosses: 1}},          // 80%
		{"amy", Aggregates{TotalGames: 5, TotalWins: 4, TotalLosses: 1}},          // 80%, same games
		{"kim", Aggregates{TotalGames: 2000, TotalWins: 1333, TotalLosses: 667}},  // 66.65%
		{"lee", Aggregates{TotalGames: 6, TotalWins: 4, TotalLosses: 2}},          // 66.67%
		{"max", Aggregates{TotalGames: 3000, TotalWins: 2000, TotalLosses: 1000}}, // 66.67%, more games
	}
	for _, p := range seed {
		_, err := conn.Exec(`INSERT INTO users (id, username, created_at) VALUES (?, ?, 'now')`, "id-"+p.name, p.name)
		require.NoError(t, err)
		_, err = s.Import(ctx, "id-"+p.name, p.agg)
		require.NoError(t, err)
	}

	rows, err := s.Leaderboard(ctx, 0, 0)
	require.NoError(t, err)
	var names []string
	for _, r := range rows {
		names = append(names, r.Username)
	}
	assert.Equal(t, []string{"amy", "zed", "max", "lee", "kim"}, names)
}

func TestRateKey(t *testing.T) {
	assert.Equal(t, rateKey(80.0), rateKey(80.004))
	assert.NotEqual(t, rateKey(80.0), rateKey(80.008))
	assert.Equal(t, rateKey(80.008), rateKey(80.01))
}
