// internal/daily/daily.go
//
// Daily challenge: one shared secret per UTC day, one result per player.
// Responsibilities:
//   - Deterministic word selection: HMAC-SHA256(salt, YYYY-MM-DD) mod N.
//   - Starting daily rounds through the session service (same engine, same
//     per-round locking as regular rounds).
//   - Recording the first finished result per player and day.
package daily

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/session"
	"github.com/robalobadob/wordle/internal/store"
)

var (
	ErrAlreadyPlayed = errors.New("daily: already played today")
	ErrNotDaily      = errors.New("daily: not a daily round")
	ErrNoAnswers     = errors.New("daily: empty answers list")
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Rounds is the subset of *session.Service the daily challenge drives.
type Rounds interface {
	StartDaily(ctx context.Context, owner, secret, date string) (store.Session, error)
	Get(ctx context.Context, id, owner string) (store.Session, error)
	GuessDaily(ctx context.Context, id, owner, word string) (store.Session, game.GuessResult, error)
}

var _ Rounds = (*session.Service)(nil)

type Service struct {
	rounds  Rounds
	results *Store
	answers []string
	salt    string
	now     func() time.Time
}

func NewService(rounds Rounds, results *Store, answers []string, salt string) *Service {
	return &Service{rounds: rounds, results: results, answers: answers, salt: salt, now: time.Now}
}

// Today returns today's date key and word index.
func (s *Service) Today() (string, int) {
	now := s.now()
	return DateKey(now), WordIndex(now, s.salt, len(s.answers))
}

// Start begins or resumes today's round for owner.
func (s *Service) Start(ctx context.Context, owner string) (store.Session, error) {
	if len(s.answers) == 0 {
		return store.Session{}, ErrNoAnswers
	}
	date, idx := s.Today()
	played, err := s.results.AlreadyPlayed(ctx, owner, date)
	if err != nil {
		return store.Session{}, err
	}
	if played {
		return store.Session{}, ErrAlreadyPlayed
	}
	sess, err := s.rounds.StartDaily(ctx, owner, s.answers[idx], date)
	if err != nil {
		return store.Session{}, err
	}
	if sess.Round.Over() {
		return store.Session{}, ErrAlreadyPlayed
	}
	return sess, nil
}

// Guess submits word to a daily round and stores the result when the
// round ends.
func (s *Service) Guess(ctx context.Context, id, owner, word string) (store.Session, game.GuessResult, error) {
	cur, err := s.rounds.Get(ctx, id, owner)
	if err != nil {
		return store.Session{}, game.GuessResult{}, err
	}
	if cur.Daily == "" {
		return store.Session{}, game.GuessResult{}, ErrNotDaily
	}

	sess, res, err := s.rounds.GuessDaily(ctx, id, owner, word)
	if err != nil || !sess.Round.Over() {
		return sess, res, err
	}

	r := Result{
		UserID:    owner,
		Date:      sess.Daily,
		WordIndex: indexOf(s.answers, sess.Round.Secret),
		Won:       sess.Round.Status == game.Won,
		Guesses:   sess.Round.GuessesUsed(),
		ElapsedMs: int(s.now().Sub(sess.StartedAt).Milliseconds()),
	}
	if err := s.results.InsertResult(ctx, r); err != nil {
		log.Warn().Err(err).Str("user", owner).Str("date", r.Date).Msg("daily result not saved")
	}
	return sess, res, nil
}

// Leaderboard returns the winners for date ("" means today).
func (s *Service) Leaderboard(ctx context.Context, date string) ([]LBRow, error) {
	if date == "" {
		date, _ = s.Today()
	}
	return s.results.Leaderboard(ctx, date, DefaultLeaderboardLimit)
}

func indexOf(list []string, w string) int {
	for i, v := range list {
		if v == w {
			return i
		}
	}
	return -1
}
