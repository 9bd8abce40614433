package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

// newWordSource loads the lexicon and, when remote is set, attaches the
// Datamuse ranker and the dictionary lookup.
func newWordSource(c *config.Config, remote bool) (*words.Source, error) {
	lex, err := words.Load(c.Words.Answers, c.Words.Allowed)
	if err != nil {
		return nil, err
	}
	a, g := lex.Stats()
	log.Info().Int("answers", a).Int("allowed", g).Bool("remote", remote).Msg("word lists loaded")

	opts := []words.Option{words.WithTimeout(c.Words.Timeout)}
	if remote {
		client := &http.Client{Timeout: c.Words.Timeout}
		opts = append(opts,
			words.WithRanker(words.NewDatamuse(c.Words.DatamuseURL, client, c.Words.CacheTTL)),
			words.WithDictionary(words.NewDictionary(c.Words.DictionaryURL, client)),
		)
	}
	return words.NewSource(lex, opts...), nil
}

// openRounds returns the round store and its locker: Redis when an address
// is configured, process memory otherwise. The returned func releases the
// connection.
func openRounds(ctx context.Context, c *config.Config) (store.Store, store.Locker, func() error, error) {
	if c.Redis.Addr == "" {
		log.Info().Msg("rounds kept in memory")
		return store.NewMemoryStore(), store.NewMemoryLocker(), func() error { return nil }, nil
	}

	client := backend.NewClient(&backend.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, nil, fmt.Errorf("redis %s: %w", c.Redis.Addr, err)
	}
	log.Info().Str("addr", c.Redis.Addr).Dur("ttl", c.Redis.TTL).Msg("rounds kept in redis")

	rounds := store.NewRedis(client, store.WithTTL(c.Redis.TTL))
	locks := store.NewRedisLocker(client, store.DefaultPrefix, store.DefaultLockTTL)
	return rounds, locks, client.Close, nil
}
