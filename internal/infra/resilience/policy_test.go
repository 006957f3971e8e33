package resilience

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"authcore/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	states []string
}

func (m *recordingMetrics) LoginAttempt(string)        {}
func (m *recordingMetrics) RegistrationOutcome(string) {}
func (m *recordingMetrics) FatalInconsistency()        {}
func (m *recordingMetrics) SessionsSwept(int64)        {}
func (m *recordingMetrics) BreakerState(_ string, state string) {
	m.states = append(m.states, state)
}

func testSettings() Settings {
	return Settings{
		Name:                 "profile-service",
		MaxAttempts:          3,
		InitialBackoff:       time.Millisecond,
		MaxBackoff:           2 * time.Millisecond,
		Multiplier:           2,
		AttemptTimeout:       time.Second,
		FailureRateThreshold: 0.5,
		MinimumRequests:      4,
		Window:               time.Minute,
		OpenTimeout:          time.Minute,
		HalfOpenMaxRequests:  1,
	}
}

func newTestPolicy(settings Settings, metrics *recordingMetrics) *Policy {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if metrics == nil {
		return NewPolicy(settings, logger, nil)
	}

	return NewPolicy(settings, logger, metrics)
}

func TestExecute_Success(t *testing.T) {
	policy := newTestPolicy(testSettings(), nil)

	got, err := Execute(context.Background(), policy, func(context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestExecute_RetriesTransientFailures(t *testing.T) {
	policy := newTestPolicy(testSettings(), nil)
	var calls atomic.Int32

	got, err := Execute(context.Background(), policy, func(context.Context) (string, error) {
		if calls.Add(1) < 3 {
			return "", errors.New("connection refused")
		}

		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExecute_StopsAfterMaxAttempts(t *testing.T) {
	policy := newTestPolicy(testSettings(), nil)
	var calls atomic.Int32
	boom := errors.New("503 service unavailable")

	_, err := Execute(context.Background(), policy, func(context.Context) (int, error) {
		calls.Add(1)

		return 0, boom
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, int32(3), calls.Load())
}

func TestExecute_PermanentErrorIsNotRetried(t *testing.T) {
	policy := newTestPolicy(testSettings(), nil)
	var calls atomic.Int32
	rejected := errors.New("400 bad request")

	for range 5 {
		_, err := Execute(context.Background(), policy, func(context.Context) (int, error) {
			calls.Add(1)

			return 0, Permanent(rejected)
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, rejected))
		assert.True(t, IsPermanent(err))
	}

	assert.Equal(t, int32(5), calls.Load())
	assert.Equal(t, "closed", policy.State())
}

func TestExecute_OpenBreakerFailsFast(t *testing.T) {
	settings := testSettings()
	settings.MaxAttempts = 2
	metrics := &recordingMetrics{}
	policy := newTestPolicy(settings, metrics)
	var calls atomic.Int32

	failing := func(context.Context) (int, error) {
		calls.Add(1)

		return 0, errors.New("timeout")
	}

	_, err := Execute(context.Background(), policy, failing)
	require.Error(t, err)
	_, err = Execute(context.Background(), policy, failing)
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, "open", policy.State())

	_, err = Execute(context.Background(), policy, failing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCircuitOpen))
	assert.Equal(t, int32(4), calls.Load(), "open breaker must not call through or retry")
	assert.Equal(t, []string{"closed", "open"}, metrics.states)
}

func TestExecute_AttemptTimeout(t *testing.T) {
	settings := testSettings()
	settings.MaxAttempts = 1
	settings.AttemptTimeout = 10 * time.Millisecond
	policy := newTestPolicy(settings, nil)

	_, err := Execute(context.Background(), policy, func(ctx context.Context) (int, error) {
		<-ctx.Done()

		return 0, ctx.Err()
	})

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := &config.ProfileServiceConfig{
		Timeout: 2 * time.Second,
		Resilience: config.ResilienceConfig{
			MaxAttempts:          4,
			FailureRateThreshold: 0.6,
			MinimumRequests:      10,
			OpenTimeout:          5 * time.Second,
		},
	}

	s := SettingsFromConfig("profiles", cfg)

	assert.Equal(t, "profiles", s.Name)
	assert.Equal(t, uint(4), s.MaxAttempts)
	assert.Equal(t, 2*time.Second, s.AttemptTimeout)
	assert.InDelta(t, 0.6, s.FailureRateThreshold, 1e-9)
	assert.Equal(t, uint32(10), s.MinimumRequests)
	assert.Equal(t, 5*time.Second, s.OpenTimeout)
}
