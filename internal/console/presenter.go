// internal/console/presenter.go
//
// Terminal Presenter: board, keyboard, outcome and statistics. Tiles carry
// text markers so output stays readable without color.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/stats"
)

// keyboardRows is the QWERTY layout used for the letter summary.
var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// Presenter draws the board and keyboard. Tiles always carry a text marker
// ([A] correct, (A) present, " A " absent) so the board reads the same with
// colors stripped.
type Presenter struct {
	out io.Writer
	st  styles
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewPresenter renders to out. With color false (or when out is not a
// terminal) output is plain ASCII.
func NewPresenter(out io.Writer, color bool) *Presenter {
	r := lipgloss.NewRenderer(out)
	if !color || !IsTerminal(out) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Presenter{out: out, st: newStyles(r)}
}

// Present prints the board after an accepted guess.
func (p *Presenter) Present(state game.RoundState, _ game.GuessResult) {
	fmt.Fprintln(p.out, p.Board(state))
	fmt.Fprintln(p.out, p.Keyboard(state.History))
	if !state.Over() {
		fmt.Fprintln(p.out, p.st.muted.Render(fmt.Sprintf("%d guesses left", game.RemainingGuesses(state))))
	}
}

// Tile renders one letter with its feedback marker.
func (p *Presenter) Tile(letter byte, f game.Feedback) string {
	l := strings.ToUpper(string(letter))
	switch f {
	case game.Correct:
		return p.st.correct.Render("[" + l + "]")
	case game.Present:
		return p.st.present.Render("(" + l + ")")
	default:
		return p.st.absent.Render(" " + l + " ")
	}
}

// Row renders one scored guess.
func (p *Presenter) Row(r game.GuessResult) string {
	tiles := make([]string, 0, game.WordLength)
	for i := 0; i < len(r.Guess) && i < game.WordLength; i++ {
		tiles = append(tiles, p.Tile(r.Guess[i], r.Feedback[i]))
	}
	return strings.Join(tiles, " ")
}

// Board renders every guess so far, one row per guess, followed by blank
// rows for the guesses left.
func (p *Presenter) Board(state game.RoundState) string {
	var b strings.Builder
	for _, r := range state.History {
		b.WriteString(p.Row(r))
		b.WriteByte('\n')
	}
	blank := p.st.muted.Render(strings.TrimSpace(strings.Repeat(" _  ", game.WordLength)))
	for i := 0; i < game.RemainingGuesses(state); i++ {
		b.WriteString(blank)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// Keyboard renders the letters guessed so far at their best feedback;
// untried letters are plain.
func (p *Presenter) Keyboard(history []game.GuessResult) string {
	best := game.Keyboard(history)
	lines := make([]string, 0, len(keyboardRows))
	for i, row := range keyboardRows {
		keys := make([]string, 0, len(row))
		for j := 0; j < len(row); j++ {
			l := row[j]
			f, seen := best[string(l)]
			if !seen {
				keys = append(keys, p.st.unused.Render(" "+strings.ToUpper(string(l))+" "))
				continue
			}
			keys = append(keys, p.Tile(l, f))
		}
		lines = append(lines, strings.Repeat(" ", i)+strings.Join(keys, ""))
	}
	return strings.Join(lines, "\n")
}

// Outcome prints the end-of-round message.
func (p *Presenter) Outcome(state game.RoundState) {
	switch state.Status {
	case game.Won:
		fmt.Fprintln(p.out, p.st.win.Render(fmt.Sprintf("Solved in %d/%d!", state.GuessesUsed(), game.MaxGuesses)))
	case game.Lost:
		fmt.Fprintln(p.out, p.st.err.Render("Out of guesses. The word was "+strings.ToUpper(state.Secret)+"."))
	}
}

// Stats prints totals and the guess distribution.
func (p *Presenter) Stats(a stats.Aggregates, d stats.Distribution) {
	fmt.Fprintln(p.out, p.st.title.Render("Statistics"))
	fmt.Fprintf(p.out, "Played %d  Win %% %.0f  Streak %d  Max streak %d\n",
		a.TotalGames, a.WinRate(), a.CurrentStreak, a.MaxStreak)

	top := 0
	for _, n := range d {
		top = max(top, n)
	}
	for i, n := range d {
		bar := 0
		if top > 0 {
			bar = n * 20 / top
		}
		fmt.Fprintf(p.out, "%d %s %d\n", i+1, p.st.correct.Render(strings.Repeat("#", bar)), n)
	}
}

func (p *Presenter) Title(s string) { fmt.Fprintln(p.out, p.st.title.Render(s)) }

func (p *Presenter) Info(s string) { fmt.Fprintln(p.out, p.st.muted.Render(s)) }

func (p *Presenter) Error(s string) { fmt.Fprintln(p.out, p.st.err.Render(s)) }
