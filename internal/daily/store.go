// internal/daily/store.go
//
// Daily results in SQLite.
// Responsibilities:
//   - One result per player and date (first insert wins).
//   - Leaderboard of the day's winners: fastest first, then fewest guesses.
package daily

import (
	"context"
	"database/sql"
)

// DefaultLeaderboardLimit bounds the daily leaderboard.
const DefaultLeaderboardLimit = 20

type Result struct {
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Won       bool   `json:"won"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult keeps the first result per player and day.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, word_index, won, guesses, elapsed_ms)
		VALUES(?,?,?,?,?,?)`, r.UserID, r.Date, r.WordIndex, r.Won, r.Guesses, r.ElapsedMs,
	)
	return err
}

type LBRow struct {
	UserID    string `json:"userId"`
	Username  string `json:"username,omitempty"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard lists the day's winners, fastest first.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.user_id, COALESCE(u.username, ''), d.guesses, d.elapsed_ms
		FROM daily_results d
		LEFT JOIN users u ON u.id = d.user_id
		WHERE d.date=? AND d.won=1
		ORDER BY d.elapsed_ms ASC, d.guesses ASC, d.created_at ASC
		LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.UserID, &r.Username, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
