package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig controls the circuit breaker around provider calls
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // closed-state count reset period
	Timeout          time.Duration // open duration before probing
	MinRequests      uint32
	FailureThreshold float64
}

// DefaultBreakerConfig returns the breaker settings used by the server
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          true,
		MaxRequests:      2,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		MinRequests:      4,
		FailureThreshold: 0.6,
	}
}

// BreakerClient decorates a Client with a circuit breaker. Context cancellation by
// the caller does not count as a provider failure.
type BreakerClient struct {
	next Client
	cb   *gobreaker.CircuitBreaker[string]
}

// WithBreaker wraps next. A disabled config returns next unchanged.
func WithBreaker(next Client, cfg BreakerConfig) Client {
	if !cfg.Enabled {
		return next
	}
	settings := gobreaker.Settings{
		Name:        "llm",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("[llm] circuit %s: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
	return &BreakerClient{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (b *BreakerClient) execute(fn func() (string, error)) (string, error) {
	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", &CircuitOpenError{Name: b.cb.Name(), Cause: err}
	}
	return out, err
}

// GenerateContent calls the wrapped client through the breaker
func (b *BreakerClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return b.execute(func() (string, error) { return b.next.GenerateContent(ctx, prompt, tier) })
}

// GenerateJSON calls the wrapped client through the breaker
func (b *BreakerClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return b.execute(func() (string, error) { return b.next.GenerateJSON(ctx, prompt, tier) })
}

// GetModel returns the wrapped client's model for tier
func (b *BreakerClient) GetModel(tier ModelTier) string {
	return b.next.GetModel(tier)
}

// Close closes the wrapped client
func (b *BreakerClient) Close() error {
	return b.next.Close()
}

// State reports the breaker state, e.g. "closed" or "open"
func (b *BreakerClient) State() string {
	return b.cb.State().String()
}

// Healthy reports whether the breaker is closed
func (b *BreakerClient) Healthy() bool {
	return b.cb.State() == gobreaker.StateClosed
}
