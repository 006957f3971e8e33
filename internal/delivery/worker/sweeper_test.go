package worker

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"authcore/config"
	deliverycontext "authcore/internal/delivery/context"
	mockUC "authcore/internal/mocks/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestSweeper(t *testing.T, interval time.Duration, sessionUC *mockUC.MockSessionUsecase) (*fxtest.Lifecycle, func(context.Context) error) {
	t.Helper()

	cfg := &config.Config{Cleanup: &config.CleanupConfig{Interval: interval}}
	lc := fxtest.NewLifecycle(t)

	d, err := NewSweeper(SweeperParams{
		Lc:             lc,
		Cfg:            cfg,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		SessionUsecase: sessionUC,
	})
	require.NoError(t, err)

	return lc, d.Serve
}

func TestSweeper_SweepsUntilStopped(t *testing.T) {
	sessionUC := mockUC.NewMockSessionUsecase(t)
	swept := make(chan struct{}, 16)

	sessionUC.EXPECT().
		CleanupExpiredSessions(mock.Anything).
		RunAndReturn(func(ctx context.Context) (int64, error) {
			assert.NotEmpty(t, deliverycontext.RequestIDFromContext(ctx))
			select {
			case swept <- struct{}{}:
			default:
			}

			return 3, nil
		})

	lc, serve := newTestSweeper(t, 5*time.Millisecond, sessionUC)
	lc.RequireStart()

	result := make(chan error, 1)
	go func() { result <- serve(context.Background()) }()

	for range 2 {
		select {
		case <-swept:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not run")
		}
	}

	lc.RequireStop()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_KeepsRunningAfterFailure(t *testing.T) {
	sessionUC := mockUC.NewMockSessionUsecase(t)
	calls := make(chan struct{}, 16)

	sessionUC.EXPECT().
		CleanupExpiredSessions(mock.Anything).
		RunAndReturn(func(context.Context) (int64, error) {
			select {
			case calls <- struct{}{}:
			default:
			}

			return 0, errors.New("database unavailable")
		})

	lc, serve := newTestSweeper(t, 5*time.Millisecond, sessionUC)
	lc.RequireStart()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- serve(ctx) }()

	for range 2 {
		select {
		case <-calls:
		case <-time.After(time.Second):
			t.Fatal("sweeper stopped after a failed sweep")
		}
	}

	cancel()
	assert.NoError(t, <-result)
	lc.RequireStop()
}

func TestSweeper_DisabledWithoutInterval(t *testing.T) {
	sessionUC := mockUC.NewMockSessionUsecase(t)

	lc, serve := newTestSweeper(t, 0, sessionUC)
	lc.RequireStart()

	assert.NoError(t, serve(context.Background()))
	sessionUC.AssertNotCalled(t, "CleanupExpiredSessions", mock.Anything)
	lc.RequireStop()
}
