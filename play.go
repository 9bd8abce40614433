// play.go
//
// `wordle play`: one round in the terminal with local statistics.
package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/console"
	"github.com/robalobadob/wordle/internal/session"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/store"
)

// localOwner owns every round played from the terminal.
const localOwner = "local"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one round in the terminal",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringP("difficulty", "d", "medium", "easy, medium or hard")
	playCmd.Flags().Bool("offline", false, "use only the bundled word lists")
	playCmd.Flags().Bool("no-color", false, "plain output")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	difficulty, _ := cmd.Flags().GetString("difficulty")
	offline, _ := cmd.Flags().GetBool("offline")
	noColor, _ := cmd.Flags().GetBool("no-color")

	src, err := newWordSource(cfg, cfg.Words.Remote && !offline)
	if err != nil {
		return err
	}

	local := stats.NewFileStore(cfg.Stats.File)
	p := console.NewPresenter(cmd.OutOrStdout(), !noColor)
	sessions := session.New(src, store.NewMemoryStore(),
		session.WithPresenter(p),
		session.WithRecorder(stats.NewRecorder(stats.Named{Name: "file", Store: local})),
	)

	loop := &console.Loop{
		Rounds:     sessions,
		Presenter:  p,
		Stats:      local,
		Owner:      localOwner,
		Difficulty: difficulty,
	}
	_, err = loop.Run(cmd.Context(), cmd.InOrStdin())
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
