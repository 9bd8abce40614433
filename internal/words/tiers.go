package words

import (
	"errors"
	"sort"
	"strings"
)

// Difficulty selects which frequency tier a secret is drawn from.
type Difficulty string

const (
	Easy   Difficulty = "easy"   // common everyday words
	Medium Difficulty = "medium" // moderately common words
	Hard   Difficulty = "hard"   // rare and challenging words
)

var ErrUnknownDifficulty = errors.New("words: unknown difficulty")

// ParseDifficulty maps user input to a Difficulty. Empty input is Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Medium, nil
	case Easy, Medium, Hard:
		return d, nil
	}
	return Medium, ErrUnknownDifficulty
}

// Tiers partitions a ranked word list by difficulty.
type Tiers struct {
	Easy   []string
	Medium []string
	Hard   []string
}

// For returns the tier for d; unknown values get Medium.
func (t Tiers) For(d Difficulty) []string {
	switch d {
	case Easy:
		return t.Easy
	case Hard:
		return t.Hard
	}
	return t.Medium
}

// Contains reports whether w appears in any tier.
func (t Tiers) Contains(w string) bool {
	for _, tier := range [][]string{t.Easy, t.Medium, t.Hard} {
		for _, x := range tier {
			if x == w {
				return true
			}
		}
	}
	return false
}

// Len is the total number of words across tiers.
func (t Tiers) Len() int { return len(t.Easy) + len(t.Medium) + len(t.Hard) }

// Split cuts a most-common-first list into the top 30% (easy), the middle
// 40% (medium) and the bottom 30% (hard). Boundaries are floored.
func Split(ranked []string) Tiers {
	n := len(ranked)
	lo, hi := n*3/10, n*7/10
	return Tiers{
		Easy:   ranked[:lo:lo],
		Medium: ranked[lo:hi:hi],
		Hard:   ranked[hi:],
	}
}

// commonLetters drive the offline commonness heuristic.
const commonLetters = "etaoinshrdlu"

// RankByCommonness orders words by how many of their letters are common
// English letters, most common first. Ties keep their input order.
func RankByCommonness(words []string) []string {
	type scored struct {
		word  string
		score int
	}
	s := make([]scored, len(words))
	for i, w := range words {
		n := 0
		for _, r := range w {
			if strings.ContainsRune(commonLetters, r) {
				n++
			}
		}
		s[i] = scored{w, n}
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].score > s[j].score })

	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].word
	}
	return out
}
