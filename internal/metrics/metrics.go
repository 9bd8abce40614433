// Package metrics holds the prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is private so tests and embedders don't collide with the
// default global registry.
var Registry = prometheus.NewRegistry()

var (
	// Guesses counts submissions by outcome:
	// accepted | wrong_length | not_in_word_list | round_over.
	Guesses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_guesses_total",
			Help: "Guess submissions by outcome",
		},
		[]string{"outcome"},
	)

	// RoundsStarted counts new rounds by difficulty.
	RoundsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_rounds_started_total",
			Help: "Rounds started by difficulty",
		},
		[]string{"difficulty"},
	)

	// RoundsFinished counts terminal transitions by status (won/lost).
	RoundsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_rounds_finished_total",
			Help: "Rounds that reached a terminal status",
		},
		[]string{"status"},
	)

	// WordFallbacks counts secret-word fallbacks away from the remote API.
	WordFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_word_source_fallbacks_total",
			Help: "Secret word fallbacks by stage",
		},
		[]string{"stage"},
	)

	// RemoteDuration observes remote word/dictionary calls.
	RemoteDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordle_remote_request_duration_seconds",
			Help:    "Duration of remote word API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"api", "result"},
	)

	// StatsFailures counts swallowed stats store errors.
	StatsFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_stats_record_failures_total",
			Help: "Stats store write failures",
		},
		[]string{"store"},
	)
)

func init() {
	Registry.MustRegister(
		Guesses, RoundsStarted, RoundsFinished, WordFallbacks, RemoteDuration, StatsFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
