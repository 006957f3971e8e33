package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "authcore/internal/delivery/context"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/domain/repository"
	"authcore/internal/domain/service"
	"authcore/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager repository.TransactionManager
	metrics   service.AuthMetrics
	now       func() time.Time
	logger    *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Metrics   service.AuthMetrics
	Logger    *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		txManager: params.TxManager,
		metrics:   params.Metrics,
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOrDefault(ctx, srv.logger)
}

// RevokeAllSessions deletes the refresh token of an identity, logging it out everywhere.
func (srv *sessionService) RevokeAllSessions(ctx context.Context, identityID int64) (int64, error) {
	var removed int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.IdentityRepo().FindByID(ctx, identityID); err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.Wrap(err, "failed to find identity")
		}

		var err error

		removed, err = repoFactory.RefreshTokenRepo().DeleteByIdentityID(ctx, identityID)
		if err != nil {
			return errors.Wrap(err, "failed to delete refresh tokens")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to revoke sessions", slog.Int64("identityID", identityID), slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to revoke sessions")
	}

	srv.log(ctx).Info("Revoked sessions", slog.Int64("identityID", identityID), slog.Int64("count", removed))

	return removed, nil
}

// CleanupExpiredSessions sweeps every refresh token past its expiry. It runs
// alongside live traffic; a token found expired by Refresh may already be gone.
func (srv *sessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	var removed int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error

		removed, err = repoFactory.RefreshTokenRepo().DeleteExpired(ctx, srv.now())

		return err
	})
	if err != nil {
		srv.log(ctx).Error("Failed to clean up expired sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to clean up expired sessions")
	}

	srv.metrics.SessionsSwept(removed)
	srv.log(ctx).Debug("Expired sessions cleaned up", slog.Int64("count", removed))

	return removed, nil
}
