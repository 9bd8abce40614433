// internal/console/play.go
//
// Line-based play loop.
// Responsibilities:
//   - Start a round, read guesses line by line, re-prompt on invalid input.
//   - "?" prints help, "!" gives up.
//   - Print the outcome and local statistics when the round ends.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/store"
)

const helpText = `Guess the five-letter word in six tries.
  [A]  right letter, right spot
  (A)  letter is in the word, elsewhere
   A   letter is not in the word (or every copy is already marked)
Type a word and press enter. "?" shows this help, "!" gives up.`

// Rounds is the subset of *session.Service the play loop drives.
type Rounds interface {
	Start(ctx context.Context, owner, difficulty string) (store.Session, error)
	Guess(ctx context.Context, id, owner, word string) (store.Session, game.GuessResult, error)
	Forfeit(ctx context.Context, id, owner string) (store.Session, error)
}

// Loop plays rounds on a line-based terminal.
type Loop struct {
	Rounds     Rounds
	Presenter  *Presenter
	Stats      stats.Store // local statistics shown after each round; may be nil
	Owner      string
	Difficulty string
}

// Run plays one round, reading guesses from in. It returns the final state;
// io.EOF on input abandons the round without recording it.
func (l *Loop) Run(ctx context.Context, in io.Reader) (game.RoundState, error) {
	sess, err := l.Rounds.Start(ctx, l.Owner, l.Difficulty)
	if err != nil {
		return game.RoundState{}, err
	}
	p := l.Presenter
	p.Title(fmt.Sprintf("WORDLE (%s)", sess.Difficulty))
	p.Info(`Type "?" for help.`)

	sc := bufio.NewScanner(in)
	state := sess.Round
	for !state.Over() {
		p.Info(fmt.Sprintf("Guess %d/%d:", state.GuessesUsed()+1, game.MaxGuesses))
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return state, err
			}
			return state, io.EOF
		}
		switch line := strings.TrimSpace(sc.Text()); line {
		case "":
			continue
		case "?":
			p.Info(helpText)
			continue
		case "!":
			gave, err := l.Rounds.Forfeit(ctx, sess.ID, l.Owner)
			if err != nil {
				return state, err
			}
			p.Error("You gave up. The word was " + strings.ToUpper(gave.Round.Secret) + ".")
			l.showStats(ctx)
			return gave.Round, nil
		default:
			next, _, err := l.Rounds.Guess(ctx, sess.ID, l.Owner, line)
			switch {
			case errors.Is(err, game.ErrWrongLength):
				p.Error(fmt.Sprintf("Guesses must be %d letters.", game.WordLength))
			case errors.Is(err, game.ErrNotInWordList):
				p.Error("Not in word list.")
			case err != nil:
				return state, err
			default:
				state = next.Round
			}
		}
	}

	p.Outcome(state)
	l.showStats(ctx)
	return state, nil
}

func (l *Loop) showStats(ctx context.Context) {
	if l.Stats == nil {
		return
	}
	agg, err := l.Stats.Aggregates(ctx, l.Owner)
	if err != nil {
		log.Warn().Err(err).Msg("load stats")
		return
	}
	dist, err := l.Stats.Distribution(ctx, l.Owner)
	if err != nil {
		log.Warn().Err(err).Msg("load stats")
		return
	}
	l.Presenter.Stats(agg, dist)
}
