// Package resilient wraps ProductStore and EdgeStore with a circuit breaker
// and a per-call timeout, adapted from the teacher's HTTP circuit-breaker
// client but applied directly to the store interfaces rather than to an
// *http.Response, using gobreaker's generic Execute.
package resilient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/apperrors"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store"
)

var circuitBreakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "dclg_circuit_breaker_state",
		Help: "Current state of a DCLG store circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

// Config controls the breaker's trip behavior and the per-call timeout
// bound, matching the "each external call bounded to 300ms" rule.
type Config struct {
	Name         string
	CallTimeout  time.Duration
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// DefaultConfig returns the config implied by the concurrency model: a
// 300ms per-call bound, tripping after half of at least 5 requests fail.
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		CallTimeout:  300 * time.Millisecond,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      30 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func newBreakerSettings(cfg Config, logger *slog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			circuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
}

// ProductStore wraps a store.ProductStore with a circuit breaker and a
// per-call timeout. Breaker trips and timeouts both surface as
// apperrors.ErrStoreUnavailable.
type ProductStore struct {
	inner   store.ProductStore
	breaker *gobreaker.CircuitBreaker[any]
	timeout time.Duration
}

// NewProductStore wraps inner with a circuit breaker configured by cfg.
func NewProductStore(inner store.ProductStore, cfg Config, logger *slog.Logger) *ProductStore {
	circuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	return &ProductStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](newBreakerSettings(cfg, logger)),
		timeout: cfg.CallTimeout,
	}
}

// Get calls the wrapped ProductStore.Get under the breaker and timeout.
func (s *ProductStore) Get(ctx context.Context, sku string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.breaker.Execute(func() (any, error) {
		return s.inner.Get(ctx, sku)
	})
	if err != nil {
		if isBreakerErr(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Product{}, apperrors.StoreUnavailable(err)
		}
		return domain.Product{}, err
	}
	return result.(domain.Product), nil
}

// GetMany calls the wrapped ProductStore.GetMany under the breaker and timeout.
func (s *ProductStore) GetMany(ctx context.Context, skus []string) (map[string]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.breaker.Execute(func() (any, error) {
		return s.inner.GetMany(ctx, skus)
	})
	if err != nil {
		if isBreakerErr(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.StoreUnavailable(err)
		}
		return nil, err
	}
	return result.(map[string]domain.Product), nil
}

// EdgeStore wraps a store.EdgeStore with a circuit breaker and a per-call
// timeout.
type EdgeStore struct {
	inner   store.EdgeStore
	breaker *gobreaker.CircuitBreaker[any]
	timeout time.Duration
}

// NewEdgeStore wraps inner with a circuit breaker configured by cfg.
func NewEdgeStore(inner store.EdgeStore, cfg Config, logger *slog.Logger) *EdgeStore {
	circuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	return &EdgeStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](newBreakerSettings(cfg, logger)),
		timeout: cfg.CallTimeout,
	}
}

// Neighbors calls the wrapped EdgeStore.Neighbors under the breaker and timeout.
func (s *EdgeStore) Neighbors(ctx context.Context, sku string, minScore float64) ([]domain.Edge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.breaker.Execute(func() (any, error) {
		return s.inner.Neighbors(ctx, sku, minScore)
	})
	if err != nil {
		if isBreakerErr(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.StoreUnavailable(err)
		}
		return nil, err
	}
	return result.([]domain.Edge), nil
}

func isBreakerErr(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
