// Package resilience wraps outbound calls in bounded retry and circuit breaking.
package resilience

import (
	"context"
	"log/slog"
	"time"

	"authcore/config"
	"authcore/internal/domain/service"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned without calling the operation while the breaker rejects calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// permanentError marks a failure that retrying cannot fix, such as a 4xx answer.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. It does not count as a breaker failure.
func Permanent(err error) error {
	if err == nil {
		return nil
	}

	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked by Permanent.
func IsPermanent(err error) bool {
	var p *permanentError

	return errors.As(err, &p)
}

// Settings is the explicit retry and breaker policy.
type Settings struct {
	Name string

	MaxAttempts    uint
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64

	// AttemptTimeout bounds each individual call.
	AttemptTimeout time.Duration

	// The breaker opens once FailureRateThreshold of at least MinimumRequests
	// calls inside Window have failed, and stays open for OpenTimeout.
	FailureRateThreshold float64
	MinimumRequests      uint32
	Window               time.Duration
	OpenTimeout          time.Duration
	HalfOpenMaxRequests  uint32
}

// SettingsFromConfig maps the profile service configuration onto a policy.
func SettingsFromConfig(name string, cfg *config.ProfileServiceConfig) Settings {
	r := cfg.Resilience

	return Settings{
		Name:                 name,
		MaxAttempts:          r.MaxAttempts,
		InitialBackoff:       r.InitialBackoff,
		MaxBackoff:           r.MaxBackoff,
		Multiplier:           r.Multiplier,
		AttemptTimeout:       cfg.Timeout,
		FailureRateThreshold: r.FailureRateThreshold,
		MinimumRequests:      r.MinimumRequests,
		Window:               r.Window,
		OpenTimeout:          r.OpenTimeout,
		HalfOpenMaxRequests:  r.HalfOpenMaxRequests,
	}
}

// Policy is safe for concurrent use; the breaker state is shared by every caller.
type Policy struct {
	settings Settings
	breaker  *gobreaker.CircuitBreaker[any]
	logger   *slog.Logger
}

// NewPolicy builds a policy. metrics may be nil.
func NewPolicy(settings Settings, logger *slog.Logger, metrics service.AuthMetrics) *Policy {
	if settings.MaxAttempts == 0 {
		settings.MaxAttempts = 1
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: settings.HalfOpenMaxRequests,
		Interval:    settings.Window,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinimumRequests {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureRateThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsPermanent(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if metrics != nil {
				metrics.BreakerState(name, to.String())
			}
		},
	})

	if metrics != nil {
		metrics.BreakerState(settings.Name, gobreaker.StateClosed.String())
	}

	return &Policy{settings: settings, breaker: breaker, logger: logger}
}

// State exposes the breaker state, mostly for tests and health output.
func (p *Policy) State() string {
	return p.breaker.State().String()
}

func (p *Policy) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.settings.InitialBackoff > 0 {
		b.InitialInterval = p.settings.InitialBackoff
	}
	if p.settings.MaxBackoff > 0 {
		b.MaxInterval = p.settings.MaxBackoff
	}
	if p.settings.Multiplier >= 1 {
		b.Multiplier = p.settings.Multiplier
	}

	return b
}

// Execute runs op with retry on the outside and the breaker on the inside.
// An open breaker stops retrying at once, so it never consumes retry budget.
func Execute[T any](ctx context.Context, p *Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0

	result, err := backoff.Retry(ctx, func() (T, error) {
		attempt++

		out, err := p.breaker.Execute(func() (any, error) {
			attemptCtx := ctx
			if p.settings.AttemptTimeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, p.settings.AttemptTimeout)
				defer cancel()
			}

			return op(attemptCtx)
		})

		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			var zero T

			return zero, backoff.Permanent(errors.WithStack(ErrCircuitOpen))
		case err != nil && IsPermanent(err):
			var zero T

			return zero, backoff.Permanent(err)
		case err != nil:
			var zero T

			return zero, err
		}

		typed, _ := out.(T)

		return typed, nil
	},
		backoff.WithBackOff(p.newBackOff()),
		backoff.WithMaxTries(p.settings.MaxAttempts),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			p.logger.Warn("Retrying outbound call",
				slog.String("policy", p.settings.Name),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", next),
				slog.Any("error", err),
			)
		}),
	)
	if err != nil {
		var zero T

		return zero, errors.Wrapf(err, "%s failed after %d attempt(s)", p.settings.Name, attempt)
	}

	return result, nil
}
