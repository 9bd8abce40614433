// internal/stats/sqlite.go
//
// SQLite-backed statistics for the server: one game_stats row per finished
// round, running totals in user_aggregates, and the public leaderboard.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	// DefaultLeaderboardMinGames hides players with too few games.
	DefaultLeaderboardMinGames = 5
	// DefaultLeaderboardLimit bounds leaderboard size.
	DefaultLeaderboardLimit = 10
)

// SQLStore keeps per-round rows in game_stats and running totals in
// user_aggregates.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Record inserts the round and bumps the player's aggregates in one transaction.
func (s *SQLStore) Record(ctx context.Context, o Outcome) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.PlayedAt.IsZero() {
		o.PlayedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO game_stats (user_id, word, won, guesses_used, difficulty, game_date)
        VALUES (?, ?, ?, ?, ?, ?)`,
		o.UserID, o.Secret, o.Won, o.GuessesUsed, o.Difficulty, formatTime(o.PlayedAt),
	); err != nil {
		return fmt.Errorf("stats: insert game: %w", err)
	}

	agg, err := scanAggregates(tx.QueryRowContext(ctx, aggregatesQuery, o.UserID))
	if err != nil {
		return fmt.Errorf("stats: load aggregates: %w", err)
	}
	agg = agg.Apply(o.Won)
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO user_aggregates (user_id, total_games, total_wins, total_losses, current_streak, max_streak)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            total_games=excluded.total_games,
            total_wins=excluded.total_wins,
            total_losses=excluded.total_losses,
            current_streak=excluded.current_streak,
            max_streak=excluded.max_streak`,
		o.UserID, agg.TotalGames, agg.TotalWins, agg.TotalLosses, agg.CurrentStreak, agg.MaxStreak,
	); err != nil {
		return fmt.Errorf("stats: save aggregates: %w", err)
	}
	return tx.Commit()
}

const aggregatesQuery = `
    SELECT total_games, total_wins, total_losses, current_streak, max_streak
    FROM user_aggregates WHERE user_id=?`

// Aggregates returns zero totals for players without any finished round.
func (s *SQLStore) Aggregates(ctx context.Context, userID string) (Aggregates, error) {
	return scanAggregates(s.db.QueryRowContext(ctx, aggregatesQuery, userID))
}

func scanAggregates(row *sql.Row) (Aggregates, error) {
	var a Aggregates
	err := row.Scan(&a.TotalGames, &a.TotalWins, &a.TotalLosses, &a.CurrentStreak, &a.MaxStreak)
	if errors.Is(err, sql.ErrNoRows) {
		return Aggregates{}, nil
	}
	return a, err
}

// History returns the player's most recent rounds, newest first. limit is
// clamped to MaxHistoryLimit.
func (s *SQLStore) History(ctx context.Context, userID string, limit int) ([]Outcome, error) {
	limit = historyLimit(limit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT word, won, guesses_used, difficulty, game_date
        FROM game_stats
        WHERE user_id=?
        ORDER BY game_date DESC, id DESC
        LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Outcome{}
	for rows.Next() {
		o := Outcome{UserID: userID}
		var played string
		if err := rows.Scan(&o.Secret, &o.Won, &o.GuessesUsed, &o.Difficulty, &played); err != nil {
			return nil, err
		}
		o.PlayedAt = parseTime(played)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Distribution counts the player's wins by guesses used.
func (s *SQLStore) Distribution(ctx context.Context, userID string) (Distribution, error) {
	var d Distribution
	rows, err := s.db.QueryContext(ctx, `
        SELECT guesses_used, COUNT(*) FROM game_stats
        WHERE user_id=? AND won=1
        GROUP BY guesses_used`, userID)
	if err != nil {
		return d, err
	}
	defer rows.Close()
	for rows.Next() {
		var n, count int
		if err := rows.Scan(&n, &count); err != nil {
			return d, err
		}
		if n >= 1 && n <= len(d) {
			d[n-1] += count
		}
	}
	return d, rows.Err()
}

// Import seeds a player's aggregates from another store (e.g. the local
// file kept by the terminal client). It reports false and changes nothing
// if the player already has aggregates.
func (s *SQLStore) Import(ctx context.Context, userID string, a Aggregates) (bool, error) {
	if a.TotalGames == 0 {
		return false, nil
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO user_aggregates
            (user_id, total_games, total_wins, total_losses, current_streak, max_streak)
        VALUES (?, ?, ?, ?, ?, ?)`,
		userID, a.TotalGames, a.TotalWins, a.TotalLosses, a.CurrentStreak, a.MaxStreak,
	)
	if err != nil {
		return false, fmt.Errorf("stats: import: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LeaderboardRow is one ranked player.
type LeaderboardRow struct {
	Username      string  `json:"username"`
	TotalGames    int     `json:"totalGames"`
	TotalWins     int     `json:"totalWins"`
	WinRate       float64 `json:"winRate"`
	CurrentStreak int     `json:"currentStreak"`
	MaxStreak     int     `json:"maxStreak"`
}

// Leaderboard ranks registered players with at least minGames games by win
// rate rounded to 0.01 points (descending), then games played, then name.
func (s *SQLStore) Leaderboard(ctx context.Context, minGames, limit int) ([]LeaderboardRow, error) {
	if minGames <= 0 {
		minGames = DefaultLeaderboardMinGames
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT u.username, a.total_games, a.total_wins, a.current_streak, a.max_streak
        FROM user_aggregates a
        JOIN users u ON u.id = a.user_id
        WHERE a.total_games >= ?
        ORDER BY a.total_wins DESC`, minGames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.TotalGames, &r.TotalWins, &r.CurrentStreak, &r.MaxStreak); err != nil {
			return nil, err
		}
		r.WinRate = Aggregates{TotalGames: r.TotalGames, TotalWins: r.TotalWins}.WinRate()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		ri, rj := rateKey(out[i].WinRate), rateKey(out[j].WinRate)
		if ri != rj {
			return ri > rj
		}
		if out[i].TotalGames != out[j].TotalGames {
			return out[i].TotalGames > out[j].TotalGames
		}
		return out[i].Username < out[j].Username
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// rateKey buckets a win rate to hundredths of a point so ties compare
// transitively.
func rateKey(rate float64) int64 { return int64(math.Round(rate * 100)) }

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

// parseTime parses stored timestamps; on error returns zero time.
func parseTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}
