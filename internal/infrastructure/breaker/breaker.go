// Package breaker guards repository ports with a circuit breaker.
//
// Every storage failure leaves the guard wrapped in domain.ErrRepositoryUnavailable.
// Domain outcomes such as a missing store or a stale favorites revision pass
// through untouched and never count against the breaker. A call abandoned by
// its caller returns the context error.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	admindomain "github.com/sngm3741/storefinder/api/internal/admin/domain"
	"github.com/sngm3741/storefinder/api/internal/metrics"
	"github.com/sngm3741/storefinder/api/internal/public/domain"
)

// Config tunes the breaker.
type Config struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32
}

// Guard runs repository calls through one shared breaker.
type Guard struct {
	cb     *gobreaker.CircuitBreaker[any]
	logger *zap.Logger
}

// New builds a Guard. A zero FailureThreshold defaults to 5.
func New(cfg Config, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Name == "" {
		cfg.Name = "repository"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	threshold := cfg.FailureThreshold

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("repository breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetBreakerState(name, stateValue(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isPassThrough(err) || errors.Is(err, context.Canceled)
		},
	}
	metrics.SetBreakerState(cfg.Name, stateValue(gobreaker.StateClosed))
	return &Guard{cb: gobreaker.NewCircuitBreaker[any](settings), logger: logger}
}

// State reports the breaker state name.
func (g *Guard) State() string {
	return g.cb.State().String()
}

func call[T any](ctx context.Context, g *Guard, op string, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	start := time.Now()
	out, err := g.cb.Execute(func() (any, error) {
		return fn()
	})
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.ObserveRepositoryCall(op, "ok", elapsed)
	case isPassThrough(err):
		metrics.ObserveRepositoryCall(op, "miss", elapsed)
		return zero, err
	case ctx.Err() != nil:
		metrics.ObserveRepositoryCall(op, "abandoned", elapsed)
		return zero, ctx.Err()
	default:
		metrics.ObserveRepositoryCall(op, "error", elapsed)
		g.logger.Error("repository call failed", zap.String("operation", op), zap.Error(err))
		return zero, fmt.Errorf("%w: %s: %v", domain.ErrRepositoryUnavailable, op, err)
	}

	value, _ := out.(T)
	return value, nil
}

func exec(ctx context.Context, g *Guard, op string, fn func() error) error {
	_, err := call(ctx, g, op, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func isPassThrough(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrFavoritesConflict) ||
		errors.Is(err, admindomain.ErrSlugTaken)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
