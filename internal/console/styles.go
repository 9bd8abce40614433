// Package console renders rounds in a terminal and runs the line-based play
// loop used by the `play` command.
package console

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorCorrect = lipgloss.Color("#6aaa64") // green
	colorPresent = lipgloss.Color("#c9b458") // yellow
	colorAbsent  = lipgloss.Color("#787c7e") // gray
	colorText    = lipgloss.Color("#ffffff")
	colorMuted   = lipgloss.Color("#666666")
	colorTitle   = lipgloss.Color("#4ecdc4")
	colorError   = lipgloss.Color("#ff6b6b")
)

// styles are bound to one renderer so the color profile follows the output.
type styles struct {
	correct lipgloss.Style
	present lipgloss.Style
	absent  lipgloss.Style
	unused  lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	err     lipgloss.Style
	win     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	tile := r.NewStyle().Bold(true).Foreground(colorText)
	return styles{
		correct: tile.Background(colorCorrect),
		present: tile.Background(colorPresent),
		absent:  tile.Background(colorAbsent),
		unused:  r.NewStyle(),
		title:   r.NewStyle().Bold(true).Foreground(colorTitle),
		muted:   r.NewStyle().Foreground(colorMuted),
		err:     r.NewStyle().Foreground(colorError),
		win:     r.NewStyle().Bold(true).Foreground(colorCorrect),
	}
}
