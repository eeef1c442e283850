package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes BreakerSender.
type BreakerConfig struct {
	// MaxFailures consecutive failures open the breaker.
	MaxFailures uint32
	// OpenTimeout is how long the breaker stays open before a trial send.
	OpenTimeout time.Duration
}

// BreakerSender wraps a Sender in a circuit breaker so a dead transport fails
// fast with ErrUnavailable instead of blocking every signup.
type BreakerSender struct {
	next    Sender
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerSender wraps next.
func NewBreakerSender(next Sender, cfg BreakerConfig, logger *slog.Logger) *BreakerSender {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 1
	}

	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "mail",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		// Bad addresses and abandoned requests say nothing about the transport.
		IsExcluded: func(err error) bool {
			return errors.Is(err, ErrInvalidMessage) || errors.Is(err, context.Canceled)
		},
	})

	return &BreakerSender{next: next, breaker: cb}
}

// Send passes the message through unless the breaker is open.
func (s *BreakerSender) Send(ctx context.Context, msg Message) error {
	_, err := s.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Send(ctx, msg)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}

// State returns the breaker state name: closed, half-open or open.
func (s *BreakerSender) State() string {
	return s.breaker.State().String()
}

// Name identifies the breaker in health reports.
func (s *BreakerSender) Name() string {
	return "mail"
}

// HealthCheck reports the transport as seen by the breaker. No mail is sent.
func (s *BreakerSender) HealthCheck(_ context.Context) error {
	switch state := s.breaker.State(); state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("mail: degraded (circuit breaker half-open)")
	case gobreaker.StateOpen:
		return fmt.Errorf("mail: failing (circuit breaker open)")
	default:
		return fmt.Errorf("mail: unknown circuit breaker state %v", state)
	}
}
