// internal/stats/recorder.go
//
// Recorder delivers each finished round to every configured Store.
// Failures are logged and counted per store; callers only learn how many
// stores accepted the outcome.
package stats

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/metrics"
)

// Named attaches a label used in logs and metrics to a Store.
type Named struct {
	Name  string
	Store Store
}

// Recorder fans a finished round out to every configured store. Store
// failures are logged and counted but never returned: a round that has
// ended stays ended whether or not its statistics were saved.
type Recorder struct {
	stores []Named
}

func NewRecorder(stores ...Named) *Recorder {
	return &Recorder{stores: stores}
}

// Record reports the number of stores that accepted o.
func (r *Recorder) Record(ctx context.Context, o Outcome) int {
	status := "lost"
	if o.Won {
		status = "won"
	}
	metrics.RoundsFinished.WithLabelValues(status).Inc()

	if r == nil {
		return 0
	}
	ok := 0
	for _, s := range r.stores {
		if err := s.Store.Record(ctx, o); err != nil {
			metrics.StatsFailures.WithLabelValues(s.Name).Inc()
			log.Warn().Err(err).
				Str("store", s.Name).
				Str("user", o.UserID).
				Msg("stats record failed")
			continue
		}
		ok++
	}
	return ok
}
