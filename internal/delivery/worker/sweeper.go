// Package worker runs the background deliveries of the service.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"authcore/config"
	"authcore/internal/delivery"
	deliverycontext "authcore/internal/delivery/context"
	"authcore/internal/domain/lifecycle"
	"authcore/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// SweeperParams holds dependencies for the refresh token sweeper
type SweeperParams struct {
	fx.In

	Lc             fx.Lifecycle
	Cfg            *config.Config
	Logger         *slog.Logger
	SessionUsecase usecase.SessionUsecase
}

type sweeper struct {
	sessionUC usecase.SessionUsecase
	interval  time.Duration
	logger    *slog.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// NewSweeper creates the delivery that periodically deletes expired refresh tokens.
func NewSweeper(params SweeperParams) (delivery.Delivery, error) {
	var interval time.Duration
	if params.Cfg.Cleanup != nil {
		interval = params.Cfg.Cleanup.Interval
	}

	s := &sweeper{
		sessionUC: params.SessionUsecase,
		interval:  interval,
		logger:    params.Logger,
		done:      make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s, nil
}

// Serve sweeps once at startup and then on every tick until stopped.
// A failed sweep is logged and retried on the next tick.
func (s *sweeper) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("Refresh token sweeper disabled")

		return nil
	}

	s.logger.Info("Starting refresh token sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-ticker.C:
		}
	}
}

func (s *sweeper) sweep(ctx context.Context) {
	runID := uuid.New().String()
	logger := s.logger.With(slog.String("sweep_id", runID))

	ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()
	ctx = deliverycontext.WithRequestID(ctx, runID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	removed, err := s.sessionUC.CleanupExpiredSessions(ctx)
	if err != nil {
		logger.Error("Refresh token sweep failed", slog.Any("error", err))

		return
	}

	if removed > 0 {
		logger.Info("Swept expired refresh tokens", slog.Int64("removed", removed))
	}
}

func (s *sweeper) stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping refresh token sweeper")
		close(s.done)
	})

	return nil
}
