package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGuess is the parent of every recoverable, user-facing
	// rejection. The round state is unchanged when it is returned.
	ErrInvalidGuess = errors.New("invalid guess")

	ErrWrongLength   = fmt.Errorf("%w: must be %d letters", ErrInvalidGuess, WordLength)
	ErrNotInWordList = fmt.Errorf("%w: not in word list", ErrInvalidGuess)

	// ErrRoundAlreadyOver is returned for a guess against a Won or Lost round.
	ErrRoundAlreadyOver = errors.New("round already over")

	ErrInvalidSecret = fmt.Errorf("secret must be %d lowercase letters", WordLength)
)
