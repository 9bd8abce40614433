// internal/stats/stats.go
//
// Win/loss/streak statistics for finished rounds.
// Defines:
//   - Outcome: one finished round as reported by the session layer.
//   - Aggregates: running totals and streaks per player.
//   - Distribution: winning guess counts 1..6.
//   - Store: the persistence interface (sqlite, local file).
package stats

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

const (
	// DefaultHistoryLimit is used when History is asked for limit <= 0.
	DefaultHistoryLimit = 10
	// MaxHistoryLimit caps any History request.
	MaxHistoryLimit = 100
)

// historyLimit maps a requested limit into [1, MaxHistoryLimit].
func historyLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}

var ErrInvalidOutcome = errors.New("stats: invalid outcome")

// Outcome is one finished round.
type Outcome struct {
	UserID      string    `json:"userId,omitempty"`
	Secret      string    `json:"word"`
	Won         bool      `json:"won"`
	GuessesUsed int       `json:"guessesUsed"`
	Difficulty  string    `json:"difficulty,omitempty"`
	PlayedAt    time.Time `json:"playedAt"`
}

// Validate rejects outcomes no round could have produced.
func (o Outcome) Validate() error {
	if o.Secret == "" || o.GuessesUsed < 0 || o.GuessesUsed > game.MaxGuesses {
		return ErrInvalidOutcome
	}
	if o.Won && o.GuessesUsed == 0 {
		return ErrInvalidOutcome
	}
	return nil
}

// Aggregates are the running totals for one player.
type Aggregates struct {
	TotalGames    int `json:"totalGames"`
	TotalWins     int `json:"totalWins"`
	TotalLosses   int `json:"totalLosses"`
	CurrentStreak int `json:"currentStreak"`
	MaxStreak     int `json:"maxStreak"`
}

// Consistent reports whether the totals could come from real play: no
// negative counts, wins and losses add up to games, and no streak is longer
// than the wins behind it.
func (a Aggregates) Consistent() bool {
	return a.TotalGames >= 0 && a.TotalWins >= 0 && a.TotalLosses >= 0 &&
		a.CurrentStreak >= 0 && a.TotalWins+a.TotalLosses == a.TotalGames &&
		a.CurrentStreak <= a.MaxStreak && a.MaxStreak <= a.TotalWins
}

// Apply returns a with one more finished game folded in.
func (a Aggregates) Apply(won bool) Aggregates {
	a.TotalGames++
	if won {
		a.TotalWins++
		a.CurrentStreak++
		a.MaxStreak = max(a.MaxStreak, a.CurrentStreak)
	} else {
		a.TotalLosses++
		a.CurrentStreak = 0
	}
	return a
}

// WinRate is the percentage of games won; 0 with no games.
func (a Aggregates) WinRate() float64 {
	if a.TotalGames == 0 {
		return 0
	}
	return float64(a.TotalWins) / float64(a.TotalGames) * 100
}

// Distribution counts wins by number of guesses used (index 0 = one guess).
type Distribution [game.MaxGuesses]int

// Add counts a win in n guesses; out-of-range values are ignored.
func (d *Distribution) Add(n int) {
	if n >= 1 && n <= len(d) {
		d[n-1]++
	}
}

// Store persists outcomes and answers aggregate queries.
type Store interface {
	Record(ctx context.Context, o Outcome) error
	Aggregates(ctx context.Context, userID string) (Aggregates, error)
	History(ctx context.Context, userID string, limit int) ([]Outcome, error)
	Distribution(ctx context.Context, userID string) (Distribution, error)
}
