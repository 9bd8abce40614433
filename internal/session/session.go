// internal/session/session.go
//
// Service drives rounds on behalf of players.
// Responsibilities:
//   - Start rounds with a secret from the word source.
//   - Serialize guesses per round, resolve vocabulary checks before calling
//     the engine, persist the new state, and record statistics exactly once
//     when a round ends.
//   - Give up (forfeit) a round, counting it as a loss.
//   - Keep daily rounds apart: one stored round per owner and date, played
//     only through GuessDaily and never given up.
//
// The engine itself stays pure: every network lookup happens here, outside
// game.SubmitGuess.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/metrics"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

// ErrNotFound covers both unknown rounds and rounds owned by someone else.
var ErrNotFound = errors.New("session: round not found")

// WordSource supplies secrets and vocabulary checks (e.g. *words.Source).
type WordSource interface {
	Secret(ctx context.Context, d words.Difficulty) string
	IsAcceptable(ctx context.Context, word string) bool
}

// Recorder receives one Outcome per finished round (e.g. *stats.Recorder).
type Recorder interface {
	Record(ctx context.Context, o stats.Outcome) int
}

// Presenter is notified after every accepted guess.
type Presenter interface {
	Present(state game.RoundState, result game.GuessResult)
}

type Service struct {
	words     WordSource
	rounds    store.Store
	locks     store.Locker
	recorder  Recorder
	presenter Presenter
	now       func() time.Time
}

type Option func(*Service)

func WithLocker(l store.Locker) Option { return func(s *Service) { s.locks = l } }

func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

func WithPresenter(p Presenter) Option { return func(s *Service) { s.presenter = p } }

// WithClock overrides time.Now (tests).
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New returns a Service over ws and rounds. Without WithLocker an in-process
// keyed mutex is used.
func New(ws WordSource, rounds store.Store, opts ...Option) *Service {
	s := &Service{
		words:  ws,
		rounds: rounds,
		locks:  store.NewMemoryLocker(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins a round at the given difficulty ("" means medium).
func (s *Service) Start(ctx context.Context, owner, difficulty string) (store.Session, error) {
	d, err := words.ParseDifficulty(difficulty)
	if err != nil {
		return store.Session{}, err
	}
	sess, err := s.begin(ctx, uuid.NewString(), owner, s.words.Secret(ctx, d), string(d), "")
	if err != nil {
		return store.Session{}, err
	}
	metrics.RoundsStarted.WithLabelValues(string(d)).Inc()
	return sess, nil
}

// StartDaily begins or resumes owner's round for date on a fixed secret.
// The round ID is derived from date and owner, so asking again returns the
// stored round (in progress or finished) instead of a fresh one. Daily
// rounds are not recorded in the regular statistics; see package daily.
func (s *Service) StartDaily(ctx context.Context, owner, secret, date string) (store.Session, error) {
	id := DailyRoundID(date, owner)
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return store.Session{}, err
	}
	defer func() { _ = unlock(context.WithoutCancel(ctx)) }()

	cur, err := s.rounds.Get(ctx, id)
	switch {
	case err == nil && cur.Owner == owner && cur.Daily == date:
		log.Debug().Str("round", id).Str("owner", owner).Msg("daily round resumed")
		return cur, nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return store.Session{}, err
	}

	sess, err := s.begin(ctx, id, owner, secret, "daily", date)
	if err != nil {
		return store.Session{}, err
	}
	metrics.RoundsStarted.WithLabelValues("daily").Inc()
	return sess, nil
}

// DailyRoundID names owner's round for date.
func DailyRoundID(date, owner string) string {
	return "daily-" + date + "-" + owner
}

func (s *Service) begin(ctx context.Context, id, owner, secret, difficulty, date string) (store.Session, error) {
	round, err := game.NewRound(secret)
	if err != nil {
		return store.Session{}, fmt.Errorf("session: secret %q: %w", secret, err)
	}
	sess := store.Session{
		ID:         id,
		Owner:      owner,
		Difficulty: difficulty,
		Daily:      date,
		Round:      round,
		StartedAt:  s.now().UTC(),
	}
	if err := s.rounds.Save(ctx, sess); err != nil {
		return store.Session{}, err
	}
	log.Debug().Str("round", sess.ID).Str("owner", owner).Str("difficulty", difficulty).Msg("round started")
	return sess, nil
}

// Get returns the round if owner owns it.
func (s *Service) Get(ctx context.Context, id, owner string) (store.Session, error) {
	sess, err := s.rounds.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && sess.Owner != owner) {
		return store.Session{}, ErrNotFound
	}
	return sess, err
}

// Guess submits word to regular round id. Daily rounds are not visible
// here (ErrNotFound); they are played through GuessDaily. On error the
// stored round is unchanged.
func (s *Service) Guess(ctx context.Context, id, owner, word string) (store.Session, game.GuessResult, error) {
	return s.guess(ctx, id, owner, word, false)
}

// GuessDaily submits word to daily round id. Regular rounds are not visible
// here (ErrNotFound).
func (s *Service) GuessDaily(ctx context.Context, id, owner, word string) (store.Session, game.GuessResult, error) {
	return s.guess(ctx, id, owner, word, true)
}

func (s *Service) guess(ctx context.Context, id, owner, word string, daily bool) (store.Session, game.GuessResult, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return store.Session{}, game.GuessResult{}, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Str("round", id).Msg("unlock failed")
		}
	}()

	sess, err := s.Get(ctx, id, owner)
	if err != nil {
		return store.Session{}, game.GuessResult{}, err
	}
	if (sess.Daily != "") != daily {
		return store.Session{}, game.GuessResult{}, ErrNotFound
	}

	accepted := s.acceptable(ctx, sess.Round, word)
	next, res, err := game.SubmitGuess(sess.Round, word, func(string) bool { return accepted })
	if err != nil {
		metrics.Guesses.WithLabelValues(outcomeLabel(err)).Inc()
		return sess, game.GuessResult{}, err
	}
	metrics.Guesses.WithLabelValues("accepted").Inc()

	sess.Round = next
	if err := s.rounds.Save(ctx, sess); err != nil {
		return store.Session{}, game.GuessResult{}, err
	}

	if next.Over() {
		log.Info().Str("round", id).Str("status", next.Status.String()).Int("guesses", next.GuessesUsed()).Msg("round finished")
		if !daily {
			s.record(ctx, sess, next.Status == game.Won)
		}
	}
	if s.presenter != nil {
		s.presenter.Present(next, res)
	}
	return sess, res, nil
}

// acceptable resolves the vocabulary check up front. Guesses the engine
// will reject on shape alone never reach the word source, and the secret
// itself is always accepted.
func (s *Service) acceptable(ctx context.Context, round game.RoundState, word string) bool {
	w := strings.ToLower(strings.TrimSpace(word))
	if round.Over() || len(w) != game.WordLength {
		return false
	}
	if w == round.Secret {
		return true
	}
	return s.words.IsAcceptable(ctx, w)
}

// Forfeit gives up regular round id. The round is recorded as a loss with
// the guesses used so far and then deleted; the returned session still
// carries the secret. Daily rounds cannot be given up (ErrNotFound).
func (s *Service) Forfeit(ctx context.Context, id, owner string) (store.Session, error) {
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		return store.Session{}, err
	}
	defer func() { _ = unlock(context.WithoutCancel(ctx)) }()

	sess, err := s.Get(ctx, id, owner)
	if err != nil {
		return store.Session{}, err
	}
	if sess.Daily != "" {
		return store.Session{}, ErrNotFound
	}
	if sess.Round.Over() {
		return sess, game.ErrRoundAlreadyOver
	}
	if err := s.rounds.Delete(ctx, id); err != nil {
		return store.Session{}, err
	}
	s.record(ctx, sess, false)
	log.Info().Str("round", id).Int("guesses", sess.Round.GuessesUsed()).Msg("round forfeited")
	return sess, nil
}

func (s *Service) record(ctx context.Context, sess store.Session, won bool) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(context.WithoutCancel(ctx), stats.Outcome{
		UserID:      sess.Owner,
		Secret:      sess.Round.Secret,
		Won:         won,
		GuessesUsed: sess.Round.GuessesUsed(),
		Difficulty:  sess.Difficulty,
		PlayedAt:    s.now().UTC(),
	})
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, game.ErrWrongLength):
		return "wrong_length"
	case errors.Is(err, game.ErrNotInWordList):
		return "not_in_word_list"
	case errors.Is(err, game.ErrRoundAlreadyOver):
		return "round_over"
	}
	return "error"
}
