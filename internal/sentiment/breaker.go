package sentiment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/KaramelBytes/autoinsight/internal/ai"
)

// BreakerOptions tunes the circuit breaker around a remote scorer.
type BreakerOptions struct {
	MinRequests      uint32
	FailureRatio     float64
	OpenTimeout      time.Duration
	HalfOpenMaxCalls uint32
}

func DefaultBreakerOptions() BreakerOptions {
	return BreakerOptions{
		MinRequests:      5,
		FailureRatio:     0.6,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// BreakerScorer fails fast while the wrapped scorer keeps failing.
type BreakerScorer struct {
	next Scorer
	cb   *gobreaker.CircuitBreaker[float64]
}

func NewBreakerScorer(next Scorer, opt BreakerOptions, log *slog.Logger) *BreakerScorer {
	if log == nil {
		log = slog.Default()
	}
	def := DefaultBreakerOptions()
	if opt.MinRequests == 0 {
		opt.MinRequests = def.MinRequests
	}
	if opt.FailureRatio <= 0 || opt.FailureRatio > 1 {
		opt.FailureRatio = def.FailureRatio
	}
	if opt.OpenTimeout <= 0 {
		opt.OpenTimeout = def.OpenTimeout
	}
	if opt.HalfOpenMaxCalls == 0 {
		opt.HalfOpenMaxCalls = def.HalfOpenMaxCalls
	}
	settings := gobreaker.Settings{
		Name:        "sentiment_scorer",
		MaxRequests: opt.HalfOpenMaxCalls,
		Timeout:     opt.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < opt.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= opt.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAsFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerScorer{next: next, cb: gobreaker.NewCircuitBreaker[float64](settings)}
}

func (b *BreakerScorer) Score(ctx context.Context, text string) (float64, error) {
	return b.cb.Execute(func() (float64, error) {
		return b.next.Score(ctx, text)
	})
}

// countsAsFailure reports whether err says the backend is unhealthy. Caller
// cancellations and rejected requests do not.
func countsAsFailure(err error) bool {
	var bad *ai.BadRequestError
	switch {
	case errors.Is(err, context.Canceled):
		return false
	case errors.As(err, &bad):
		return false
	default:
		return true
	}
}

// IsCircuitOpen reports whether err came from an open or saturated breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
