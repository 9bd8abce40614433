// internal/game/types.go
//
// Core type definitions for the guess engine.
// Defines:
//   - Feedback: per-letter result of a guess (correct/present/absent).
//   - GuessResult: one scored guess.
//   - Status: round lifecycle tag.
//   - RoundState: the full state of a single round.

package game

import "fmt"

const (
	// WordLength is the number of letters in every secret and guess.
	WordLength = 5
	// MaxGuesses is the number of guesses a round allows.
	MaxGuesses = 6
)

// Feedback represents the evaluation result for a single letter in a guess.
// Possible values:
//   - Correct: letter matches the secret at this exact position.
//   - Present: letter occurs in an unclaimed slot elsewhere in the secret.
//   - Absent:  letter does not occur, or every occurrence is already claimed.
type Feedback uint8

const (
	Absent Feedback = iota
	Present
	Correct
)

func (f Feedback) String() string {
	switch f {
	case Correct:
		return "correct"
	case Present:
		return "present"
	case Absent:
		return "absent"
	}
	return fmt.Sprintf("feedback(%d)", uint8(f))
}

func (f Feedback) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Feedback) UnmarshalText(b []byte) error {
	switch string(b) {
	case "correct":
		*f = Correct
	case "present":
		*f = Present
	case "absent":
		*f = Absent
	default:
		return fmt.Errorf("game: unknown feedback %q", b)
	}
	return nil
}

// GuessResult is a scored guess. It is produced once by SubmitGuess and never
// modified afterwards.
type GuessResult struct {
	Guess    string               `json:"guess"`
	Feedback [WordLength]Feedback `json:"feedback"`
}

// Solved reports whether every letter was Correct.
func (r GuessResult) Solved() bool {
	for _, f := range r.Feedback {
		if f != Correct {
			return false
		}
	}
	return true
}

// Status is the coarse lifecycle tag of a round.
type Status uint8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "in_progress":
		*s = InProgress
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("game: unknown status %q", b)
	}
	return nil
}

// RoundState holds the state of a single round.
//
// Invariants:
//   - len(History) <= MaxGuesses.
//   - Status == Won iff the last guess equals Secret.
//   - Status == Lost iff the history is full and the round was not won.
//   - Once Status leaves InProgress the history never grows.
//
// A RoundState is a value: SubmitGuess returns a new one and never writes
// through the History slice of the state it was given.
type RoundState struct {
	Secret     string        `json:"secret"`
	MaxGuesses int           `json:"maxGuesses"`
	History    []GuessResult `json:"history"`
	Status     Status        `json:"status"`
}

// Over reports whether the round reached a terminal status.
func (s RoundState) Over() bool { return s.Status != InProgress }

// GuessesUsed is the number of accepted guesses so far.
func (s RoundState) GuessesUsed() int { return len(s.History) }

// Last returns the most recent guess result, if any.
func (s RoundState) Last() (GuessResult, bool) {
	if len(s.History) == 0 {
		return GuessResult{}, false
	}
	return s.History[len(s.History)-1], true
}
