package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/apiclient"
	"github.com/robalobadob/wordle/internal/console"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for rounds played in the terminal",
	RunE:  runStats,
}

var statsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Import local statistics into a server account",
	Long: `Logs in as --username and imports the local totals. The server keeps
its own totals when the account already has any.`,
	RunE: runStatsPush,
}

func init() {
	statsCmd.Flags().Int("history", stats.DefaultHistoryLimit, "recent rounds to list")
	statsPushCmd.Flags().String("server", "http://localhost:5175", "server base URL")
	statsPushCmd.Flags().String("username", "", "account to import into")
	_ = statsPushCmd.MarkFlagRequired("username")
	statsCmd.AddCommand(statsPushCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("history")
	ctx := cmd.Context()
	local := stats.NewFileStore(cfg.Stats.File)

	agg, err := local.Aggregates(ctx, localOwner)
	if err != nil {
		return err
	}
	dist, err := local.Distribution(ctx, localOwner)
	if err != nil {
		return err
	}
	history, err := local.History(ctx, localOwner, limit)
	if err != nil {
		return err
	}

	p := console.NewPresenter(cmd.OutOrStdout(), true)
	p.Title("STATISTICS")
	p.Stats(agg, dist)
	for _, o := range history {
		result := "X"
		if o.Won {
			result = fmt.Sprint(o.GuessesUsed)
		}
		p.Info(fmt.Sprintf("%s  %s  %s/%d  %s",
			o.PlayedAt.Local().Format("2006-01-02 15:04"), strings.ToUpper(o.Secret), result, game.MaxGuesses, o.Difficulty))
	}
	return nil
}

func runStatsPush(cmd *cobra.Command, _ []string) error {
	server, _ := cmd.Flags().GetString("server")
	username, _ := cmd.Flags().GetString("username")
	ctx := cmd.Context()

	agg, err := stats.NewFileStore(cfg.Stats.File).Aggregates(ctx, localOwner)
	if err != nil {
		return err
	}
	client := apiclient.New(server, nil)
	token, err := client.Login(ctx, username)
	if err != nil {
		return err
	}
	imported, err := client.ImportStats(ctx, token, agg)
	if err != nil {
		return err
	}
	log.Info().Str("server", server).Str("user", username).Bool("imported", imported).Msg("stats push")
	if imported {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d games into %s.\n", agg.TotalGames, username)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing imported: the account already has statistics or there is nothing to send.")
	}
	return nil
}
