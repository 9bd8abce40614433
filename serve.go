// serve.go
//
// `wordle serve`: builds the services from configuration and runs the HTTP
// API until SIGINT/SIGTERM, then shuts down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/internal/auth"
	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/db"
	"github.com/robalobadob/wordle/internal/httpserver"
	"github.com/robalobadob/wordle/internal/session"
	"github.com/robalobadob/wordle/internal/stats"
	"github.com/robalobadob/wordle/internal/users"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (default 5175)")
	serveCmd.Flags().String("db", "", "SQLite database path (default ./data/app.db)")
	serveCmd.Flags().String("redis", "", "Redis address for round storage (default: memory)")
	_ = v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("db.path", serveCmd.Flags().Lookup("db"))
	_ = v.BindPFlag("redis.addr", serveCmd.Flags().Lookup("redis"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if cfg.UsingDevSecret() {
		log.Warn().Msg("no secret configured, using the development secret")
	}

	conn, err := db.Open(cfg.DB.Path)
	if err != nil {
		return err
	}
	defer conn.Close()

	src, err := newWordSource(cfg, cfg.Words.Remote)
	if err != nil {
		return err
	}

	rounds, locks, closeRounds, err := openRounds(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRounds()

	sqlStats := stats.NewSQLStore(conn)
	sessions := session.New(src, rounds,
		session.WithLocker(locks),
		session.WithRecorder(stats.NewRecorder(stats.Named{Name: "sqlite", Store: sqlStats})),
	)
	lex := src.Lexicon()

	api := httpserver.New(httpserver.Deps{
		Sessions: sessions,
		Daily:    daily.NewService(sessions, daily.NewStore(conn), lex.Answers.Words(), cfg.DailySalt()),
		Users:    users.NewRegistry(conn),
		Stats:    sqlStats,
		Auth: auth.NewIssuer(auth.Config{
			Key:          cfg.JWTKey(),
			TTL:          cfg.Auth.TTL,
			CookieName:   cfg.Auth.Cookie,
			SecureCookie: cfg.Auth.SecureCookie,
		}),
		Lexicon:      lex,
		ClientOrigin: cfg.Server.ClientOrigin,
		Timeout:      cfg.Server.Timeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DB.Path).Msg("starting wordle server")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	}
}
