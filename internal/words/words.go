// internal/words/words.go
//
// Provides word list management for the word source.
//
// Responsibilities:
//   - Load answer and allowed guess lists from configured files or fall back
//     to the embedded defaults in the assets package.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//
// Load behavior:
//  1. If both answersPath and allowedPath are set,
//     load answers from the first and allowed guesses from the second.
//  2. If only allowedPath is set,
//     load that file and use it for both answers and allowed guesses.
//  3. Otherwise use the embedded answers.txt/allowed.txt.
//
// Constraints:
//   - Words must be 5 alphabetic letters (a–z); anything else is dropped.
//   - Lists are normalized to lowercase and deduplicated in order.
package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/assets"
	"github.com/robalobadob/wordle/internal/game"
)

// DefaultSecret is the last-resort answer when every list is empty.
const DefaultSecret = "crane"

// ErrEmptyAnswers is returned when no valid answer survives loading.
var ErrEmptyAnswers = errors.New("words: answers list is empty")

// List is an ordered, deduplicated set of valid words.
type List struct {
	words []string
	set   map[string]struct{}
}

// NewList normalizes words and keeps the valid ones in their original order.
func NewList(words []string) *List {
	l := &List{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if !valid(w) {
			continue
		}
		if _, dup := l.set[w]; dup {
			continue
		}
		l.set[w] = struct{}{}
		l.words = append(l.words, w)
	}
	return l
}

// Contains reports whether w (case-insensitive) is in the list.
func (l *List) Contains(w string) bool {
	if l == nil {
		return false
	}
	_, ok := l.set[strings.ToLower(strings.TrimSpace(w))]
	return ok
}

// Words returns the list in order. Callers must not modify it.
func (l *List) Words() []string {
	if l == nil {
		return nil
	}
	return l.words
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// Lexicon is the static vocabulary: answers and accepted guesses.
type Lexicon struct {
	Answers *List
	Allowed *List // always a superset of Answers
}

// Load builds a Lexicon following the three cases above.
func Load(answersPath, allowedPath string) (*Lexicon, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	// Case 2: only allowed file provided → use for both
	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	// Case 3: embedded defaults
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("words: embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("words: embedded allowed: %w", err)
		}
	}
	return NewLexicon(ansList, allowList)
}

// NewLexicon builds a Lexicon from raw lists. Answers are always allowed.
func NewLexicon(answers, allowed []string) (*Lexicon, error) {
	ans := NewList(answers)
	if ans.Len() == 0 {
		return nil, ErrEmptyAnswers
	}
	all := make([]string, 0, len(answers)+len(allowed))
	all = append(all, ans.Words()...)
	all = append(all, allowed...)
	return &Lexicon{Answers: ans, Allowed: NewList(all)}, nil
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (x *Lexicon) IsAllowed(w string) bool { return x.Allowed.Contains(w) }

// Stats returns counts of loaded words: (answers, allowed).
func (x *Lexicon) Stats() (answersCount int, allowedCount int) {
	return x.Answers.Len(), x.Allowed.Len()
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	lines, err := assets.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	return lines, nil
}

// valid reports whether w is WordLength lowercase ASCII letters.
func valid(w string) bool {
	if len(w) != game.WordLength {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// pick returns a cryptographically random element of words.
func pick(words []string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return words[0], true
	}
	return words[n.Int64()], true
}
