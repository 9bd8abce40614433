// main.go
//
// Entry point for the wordle binary.
//
//	wordle serve          HTTP API (accounts, rounds, daily challenge, stats)
//	wordle play           one round in the terminal, offline-capable
//	wordle stats          local statistics; "stats push" imports them into an account
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/logging"
)

var (
	cfgFile string
	v       = config.New()
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:          "wordle",
	Short:        "Guess the five-letter word in six tries",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		}
		c, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = c
		logging.Setup(cfg.LogLevel, os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./wordle.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
