// internal/words/source.go
//
// Source is the word source consumed by the session layer:
//   - Secret(ctx, difficulty) supplies the secret for a new round and never
//     fails; remote errors and timeouts fall back to the static lists.
//   - IsAcceptable(ctx, word) answers vocabulary checks: static allowed list
//     first, then cached remote words, then an optional dictionary lookup.
package words

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/metrics"
)

// Ranker supplies frequency-ranked difficulty tiers (e.g. *Datamuse).
type Ranker interface {
	Tiers(ctx context.Context) (Tiers, error)
	Cached() (Tiers, bool)
}

// Lookuper validates a single word remotely (e.g. *Dictionary).
type Lookuper interface {
	Lookup(ctx context.Context, word string) (bool, error)
}

const DefaultRemoteTimeout = 3 * time.Second

var errEmptyTier = errors.New("words: remote tier is empty")

// Source combines the static lexicon with optional remote collaborators.
type Source struct {
	lex     *Lexicon
	local   Tiers
	remote  Ranker
	dict    Lookuper
	timeout time.Duration
}

type Option func(*Source)

// WithRanker enables remote secret selection.
func WithRanker(r Ranker) Option {
	return func(s *Source) { s.remote = r }
}

// WithDictionary enables remote validation of words missing from the lists.
func WithDictionary(d Lookuper) Option {
	return func(s *Source) { s.dict = d }
}

// WithTimeout bounds each remote call.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewSource builds a Source over lex. The offline difficulty tiers are
// computed once from the answers list.
func NewSource(lex *Lexicon, opts ...Option) *Source {
	s := &Source{
		lex:     lex,
		local:   Split(RankByCommonness(lex.Answers.Words())),
		timeout: DefaultRemoteTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lexicon exposes the static vocabulary.
func (s *Source) Lexicon() *Lexicon { return s.lex }

// Secret picks a secret word for difficulty d.
func (s *Source) Secret(ctx context.Context, d Difficulty) string {
	if s.remote != nil {
		w, err := s.remoteSecret(ctx, d)
		if err == nil {
			return w
		}
		log.Warn().Err(err).Str("difficulty", string(d)).Msg("remote words unavailable, using local list")
		metrics.WordFallbacks.WithLabelValues("remote").Inc()
	}
	if w, ok := pick(s.local.For(d)); ok {
		return w
	}
	metrics.WordFallbacks.WithLabelValues("tier").Inc()
	if w, ok := pick(s.lex.Answers.Words()); ok {
		return w
	}
	metrics.WordFallbacks.WithLabelValues("default").Inc()
	return DefaultSecret
}

func (s *Source) remoteSecret(ctx context.Context, d Difficulty) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	t, err := s.remote.Tiers(ctx)
	if err != nil {
		return "", err
	}
	w, ok := pick(t.For(d))
	if !ok {
		return "", errEmptyTier
	}
	return w, nil
}

// IsAcceptable reports whether word may be guessed. Remote failures count
// as "not acceptable" so the player is simply asked for another word.
func (s *Source) IsAcceptable(ctx context.Context, word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if !valid(word) {
		return false
	}
	if s.lex.IsAllowed(word) {
		return true
	}
	if s.remote != nil {
		if t, ok := s.remote.Cached(); ok && t.Contains(word) {
			return true
		}
	}
	if s.dict == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	ok, err := s.dict.Lookup(ctx, word)
	if err != nil {
		log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed")
		return false
	}
	return ok
}
