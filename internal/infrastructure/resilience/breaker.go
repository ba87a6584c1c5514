// Package resilience guards the outbound model call with a circuit breaker.
// There is deliberately no retry layer: a failed model call falls through to
// the rule classifier instead of being repeated, so the breaker's only jobs
// are to stop hammering a dead service and to answer "is the service worth
// calling right now" for the coordinator's availability probe.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

type Config struct {
	MinRequests      uint32
	FailureRatio     float64
	OpenTimeout      time.Duration
	HalfOpenMaxCalls uint32
}

func DefaultConfig() Config {
	return Config{
		MinRequests:      3,
		FailureRatio:     0.6,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()
	if out.MinRequests == 0 {
		out.MinRequests = def.MinRequests
	}
	if out.FailureRatio <= 0 || out.FailureRatio > 1 {
		out.FailureRatio = def.FailureRatio
	}
	if out.OpenTimeout <= 0 {
		out.OpenTimeout = def.OpenTimeout
	}
	if out.HalfOpenMaxCalls == 0 {
		out.HalfOpenMaxCalls = def.HalfOpenMaxCalls
	}
	return out
}

// RecordFailure decides whether an error should count against the breaker.
// Context cancellation is the caller's doing, not the service's.
type RecordFailure func(err error) bool

type Breaker struct {
	breaker *gobreaker.CircuitBreaker[any]
}

func NewBreaker(name string, cfg Config, record RecordFailure) *Breaker {
	cfg = cfg.normalize()
	if record == nil {
		record = func(err error) bool { return err != nil }
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return !record(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	}

	return &Breaker{breaker: gobreaker.NewCircuitBreaker[any](settings)}
}

// Do runs fn behind the breaker. An open breaker rejects the call without
// invoking fn.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, fn(ctx)
	})
	return err
}

// Available reports whether the guarded service is currently reachable as far
// as the breaker knows. Half-open counts as available: the next call probes.
func (b *Breaker) Available() bool {
	return b.breaker.State() != gobreaker.StateOpen
}

func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
