package words

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRanker struct {
	tiers  Tiers
	err    error
	cached bool
	calls  int
}

func (f *fakeRanker) Tiers(ctx context.Context) (Tiers, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return Tiers{}, errors.New("expected a deadline")
	}
	return f.tiers, f.err
}

func (f *fakeRanker) Cached() (Tiers, bool) { return f.tiers, f.cached }

type fakeDict struct {
	known map[string]bool
	err   error
	calls int
}

func (f *fakeDict) Lookup(_ context.Context, w string) (bool, error) {
	f.calls++
	return f.known[w], f.err
}

func testLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := NewLexicon(
		[]string{"crane", "slate", "jazzy", "fjord", "tears", "notes", "pizza", "rates", "boxer", "quilt"},
		[]string{"trace"},
	)
	require.NoError(t, err)
	return lex
}

func TestSource_SecretFromRemote(t *testing.T) {
	r := &fakeRanker{tiers: Tiers{Easy: []string{"about"}, Medium: []string{"ghost"}, Hard: []string{"fjord"}}}
	s := NewSource(testLexicon(t), WithRanker(r), WithTimeout(time.Second))

	assert.Equal(t, "about", s.Secret(context.Background(), Easy))
	assert.Equal(t, "ghost", s.Secret(context.Background(), Medium))
	assert.Equal(t, "fjord", s.Secret(context.Background(), Hard))
	assert.Equal(t, 3, r.calls)
}

func TestSource_SecretFallsBackToLocalTier(t *testing.T) {
	lex := testLexicon(t)
	local := Split(RankByCommonness(lex.Answers.Words()))

	for _, r := range []*fakeRanker{
		{err: errors.New("boom")},
		{tiers: Tiers{}}, // empty tier
	} {
		s := NewSource(lex, WithRanker(r))
		for _, d := range []Difficulty{Easy, Medium, Hard} {
			got := s.Secret(context.Background(), d)
			assert.Contains(t, local.For(d), got, "difficulty %s", d)
		}
	}
}

func TestSource_SecretOffline(t *testing.T) {
	lex := testLexicon(t)
	s := NewSource(lex)
	for i := 0; i < 20; i++ {
		assert.True(t, lex.Answers.Contains(s.Secret(context.Background(), Hard)))
	}

	// a one-word list leaves the easy and medium tiers empty
	tiny, err := NewLexicon([]string{"crane"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "crane", NewSource(tiny).Secret(context.Background(), Easy))
}

func TestSource_IsAcceptable(t *testing.T) {
	r := &fakeRanker{tiers: Tiers{Hard: []string{"haiku"}}, cached: true}
	d := &fakeDict{known: map[string]bool{"quirk": true}}
	s := NewSource(testLexicon(t), WithRanker(r), WithDictionary(d))
	ctx := context.Background()

	assert.True(t, s.IsAcceptable(ctx, "Trace"), "static allowed list")
	assert.True(t, s.IsAcceptable(ctx, "haiku"), "cached remote words")
	assert.Equal(t, 0, d.calls)

	assert.True(t, s.IsAcceptable(ctx, "quirk"), "dictionary")
	assert.False(t, s.IsAcceptable(ctx, "zzzzz"))
	assert.Equal(t, 2, d.calls)

	assert.False(t, s.IsAcceptable(ctx, "toolong"))
	assert.False(t, s.IsAcceptable(ctx, "ab1de"))
	assert.Equal(t, 2, d.calls, "invalid shapes never reach the dictionary")
}

func TestSource_IsAcceptableDictionaryError(t *testing.T) {
	d := &fakeDict{known: map[string]bool{"quirk": true}, err: errors.New("timeout")}
	s := NewSource(testLexicon(t), WithDictionary(d))
	assert.False(t, s.IsAcceptable(context.Background(), "quirk"))
}

func TestSource_IsAcceptableWithoutRemotes(t *testing.T) {
	s := NewSource(testLexicon(t))
	assert.True(t, s.IsAcceptable(context.Background(), "crane"))
	assert.False(t, s.IsAcceptable(context.Background(), "quirk"))
}
