// internal/game/engine.go
//
// Core game engine for a single round.
// Responsibilities:
//   - Create new rounds from a secret word (5 letters, 6 guesses).
//   - Validate guesses (length, alphabetic, caller-supplied vocabulary check).
//   - Score guesses using the two-pass claim algorithm.
//   - Track state transitions: in_progress -> won/lost.
//
// Notes:
//   - The engine performs no I/O. Vocabulary checks that need the network are
//     resolved by the caller before SubmitGuess and handed in as a predicate.
//   - The engine holds no locks; callers serialize submissions per round.
package game

import (
	"strings"
)

// NewRound returns a fresh round for secret with an empty history.
func NewRound(secret string) (RoundState, error) {
	secret = strings.ToLower(strings.TrimSpace(secret))
	if len(secret) != WordLength || !isAlpha(secret) {
		return RoundState{}, ErrInvalidSecret
	}
	return RoundState{
		Secret:     secret,
		MaxGuesses: MaxGuesses,
		History:    []GuessResult{},
		Status:     InProgress,
	}, nil
}

// SubmitGuess validates and scores guess against state.
// Returns: the updated state, the scored guess, or an error.
//
// Validation rules (state is returned unchanged on failure):
//   - Round must be in progress (ErrRoundAlreadyOver).
//   - Guess must be exactly WordLength letters (ErrWrongLength).
//   - Guess must be alphabetic and accepted by isAcceptable (ErrNotInWordList).
//     A nil isAcceptable accepts every alphabetic guess.
//
// State transitions:
//   - guess == secret                 -> Won.
//   - history full and not won        -> Lost.
//   - otherwise                       -> InProgress.
func SubmitGuess(state RoundState, guess string, isAcceptable func(string) bool) (RoundState, GuessResult, error) {
	if state.Over() {
		return state, GuessResult{}, ErrRoundAlreadyOver
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if len([]rune(guess)) != WordLength {
		return state, GuessResult{}, ErrWrongLength
	}
	if !isAlpha(guess) || (isAcceptable != nil && !isAcceptable(guess)) {
		return state, GuessResult{}, ErrNotInWordList
	}

	res := GuessResult{Guess: guess, Feedback: Score(state.Secret, guess)}

	next := state
	next.History = make([]GuessResult, len(state.History), len(state.History)+1)
	copy(next.History, state.History)
	next.History = append(next.History, res)

	switch {
	case guess == state.Secret:
		next.Status = Won
	case len(next.History) >= limit(state):
		next.Status = Lost
	}
	return next, res, nil
}

// Score implements the two-pass claim scoring algorithm.
//
// Pass 1:
//   - Mark exact matches Correct and claim that secret slot.
//
// Pass 2:
//   - For each non-Correct guess position, in order, claim the first
//     unclaimed secret slot (scanning left to right) holding the same letter
//     and mark Present. A claimed slot backs at most one mark.
//
// Every other position stays Absent. Score is pure; positions past the end
// of a short input are Absent.
func Score(secret, guess string) [WordLength]Feedback {
	var (
		res     [WordLength]Feedback
		claimed [WordLength]bool
	)
	n := min(len(secret), len(guess), WordLength)

	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			res[i] = Correct
			claimed[i] = true
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		for j := 0; j < n; j++ {
			if !claimed[j] && secret[j] == guess[i] {
				res[i] = Present
				claimed[j] = true
				break
			}
		}
	}
	return res
}

// RemainingGuesses is the number of guesses left; never negative.
func RemainingGuesses(state RoundState) int {
	return max(limit(state)-len(state.History), 0)
}

// limit tolerates a zero MaxGuesses from older serialized rounds.
func limit(state RoundState) int {
	if state.MaxGuesses <= 0 {
		return MaxGuesses
	}
	return state.MaxGuesses
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
