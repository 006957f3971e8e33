// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"authcore/config"
	deliverycontext "authcore/internal/delivery/context"
	"authcore/internal/domain/entity"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/domain/repository"
	"authcore/internal/domain/service"
	"authcore/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	messageTokenValid   = "Token is valid"
	messageTokenInvalid = "Token is not valid"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      service.AuthMetrics
	accessTTL    time.Duration
	refreshTTL   time.Duration
	serviceTTL   time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.AuthMetrics
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      params.Metrics,
		accessTTL:    params.Config.JWT.AccessTTL,
		refreshTTL:   params.Config.JWT.RefreshTTL,
		serviceTTL:   params.Config.JWT.ServiceTTL,
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOrDefault(ctx, srv.logger)
}

// Login checks the credentials and replaces the identity's refresh token with a new one.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	identity, err := srv.loadIdentity(ctx, input.Username)
	if err != nil {
		return nil, srv.loginFailed(ctx, input.Username, err)
	}

	// bcrypt is CPU-bound; never hold a transaction across it.
	if !srv.hasher.Check(input.Password, identity.PasswordHash) {
		return nil, srv.loginFailed(ctx, input.Username, domainerrors.ErrInvalidCredentials)
	}

	if !identity.Enabled {
		return nil, srv.loginFailed(ctx, input.Username, domainerrors.ErrIdentityDisabled)
	}

	now := srv.now()

	accessToken, err := srv.tokenService.IssueAccessToken(identity, srv.accessTTL)
	if err != nil {
		return nil, srv.loginFailed(ctx, input.Username, errors.Wrap(err, "failed to issue access token"))
	}

	expiresAt := expiryAfter(now, srv.refreshTTL)

	refreshToken, err := srv.tokenService.IssueRefreshToken(expiresAt)
	if err != nil {
		return nil, srv.loginFailed(ctx, input.Username, errors.Wrap(err, "failed to issue refresh token"))
	}

	if err := srv.replaceRefreshToken(ctx, identity.ID, srv.tokenService.HashToken(refreshToken), expiresAt, now); err != nil {
		return nil, srv.loginFailed(ctx, input.Username, err)
	}

	srv.metrics.LoginAttempt(service.LoginSuccess)
	srv.log(ctx).Debug("Identity logged in", slog.Int64("identityID", identity.ID))

	return srv.authOutput(accessToken, refreshToken), nil
}

func (srv *authService) loadIdentity(ctx context.Context, username string) (*entity.Identity, error) {
	var identity *entity.Identity

	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error

		identity, findErr = repoFactory.IdentityRepo().FindByUsername(ctx, username)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.Wrap(findErr, "failed to find identity")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return identity, nil
}

// replaceRefreshToken deletes any prior token and inserts the new one in one transaction.
// The identity row lock serializes concurrent logins of the same identity.
func (srv *authService) replaceRefreshToken(ctx context.Context, identityID int64, tokenHash string, expiresAt, now time.Time) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()
		tokenRepo := repoFactory.RefreshTokenRepo()

		if err := identityRepo.LockForUpdate(ctx, identityID); err != nil {
			return errors.Wrap(err, "failed to lock identity")
		}

		removed, err := tokenRepo.DeleteByIdentityID(ctx, identityID)
		if err != nil {
			return errors.Wrap(err, "failed to delete previous refresh token")
		}
		if removed > 0 {
			srv.log(ctx).Debug("Replaced previous refresh token", slog.Int64("identityID", identityID))
		}

		if err := tokenRepo.Create(ctx, &entity.RefreshToken{
			IdentityID: identityID,
			TokenHash:  tokenHash,
			ExpiresAt:  expiresAt,
		}); err != nil {
			return errors.Wrap(err, "failed to store refresh token")
		}

		if err := identityRepo.UpdateLastLogin(ctx, identityID, now); err != nil {
			return errors.Wrap(err, "failed to update last login")
		}

		return nil
	})
}

func (srv *authService) loginFailed(ctx context.Context, username string, err error) error {
	srv.metrics.LoginAttempt(loginResult(err))
	srv.log(ctx).Warn("Login failed", slog.String("username", username), slog.Any("error", err))

	return errors.Wrap(err, "login failed")
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return service.LoginInvalidCredentials
	case errors.Is(err, domainerrors.ErrIdentityNotFound):
		return service.LoginUnknownIdentity
	case errors.Is(err, domainerrors.ErrIdentityDisabled):
		return service.LoginDisabled
	default:
		return service.LoginError
	}
}

// Refresh issues a new access token for a stored refresh token. The refresh token is
// returned unchanged; a token found expired is deleted and can never be used again.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	tokenHash := srv.tokenService.HashToken(refreshToken)
	now := srv.now()

	var (
		identity *entity.Identity
		expired  bool
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.RefreshTokenRepo()

		stored, err := tokenRepo.FindByHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return srv.unknownRefreshToken(refreshToken, now)
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		if stored.IsExpired(now) {
			// Returning nil commits the delete; the failure is reported after the transaction.
			if err := tokenRepo.DeleteByID(ctx, stored.ID); err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return errors.Wrap(err, "failed to delete expired refresh token")
			}
			expired = true

			return nil
		}

		identity, err = repoFactory.IdentityRepo().FindByID(ctx, stored.IdentityID)
		if err != nil {
			if errors.Is(err, repository.ErrIdentityNotFound) {
				return domainerrors.ErrIdentityNotFound
			}

			return errors.Wrap(err, "failed to find refresh token owner")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Refresh failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "refresh failed")
	}

	if expired {
		srv.log(ctx).Info("Consumed expired refresh token")

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenExpired, "refresh failed")
	}

	if !identity.Enabled {
		return nil, errors.Wrap(domainerrors.ErrIdentityDisabled, "refresh failed")
	}

	accessToken, err := srv.tokenService.IssueAccessToken(identity, srv.accessTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return srv.authOutput(accessToken, refreshToken), nil
}

// unknownRefreshToken tells a consumed token apart from one that never existed.
func (srv *authService) unknownRefreshToken(refreshToken string, now time.Time) error {
	if hint, ok := srv.tokenService.RefreshTokenExpiryHint(refreshToken); ok && !now.Before(hint) {
		return domainerrors.ErrRefreshTokenExpired
	}

	return domainerrors.ErrRefreshTokenNotFound
}

// Validate never returns an error; failures are reported in the output.
func (srv *authService) Validate(ctx context.Context, accessToken string) *usecase.ValidationOutput {
	claims, err := srv.tokenService.VerifyAccessToken(accessToken)
	if err != nil {
		message := messageTokenInvalid

		var verificationErr *domainerrors.VerificationError
		if errors.As(err, &verificationErr) {
			message += ": " + string(verificationErr.Reason)
		}
		srv.log(ctx).Debug("Token validation failed", slog.Any("error", err))

		return &usecase.ValidationOutput{Valid: false, Message: message}
	}

	return &usecase.ValidationOutput{Valid: true, Username: claims.Subject, Message: messageTokenValid}
}

// IssueServiceToken exchanges a service API key for a short-lived service access token.
func (srv *authService) IssueServiceToken(ctx context.Context, apiKey string) (*usecase.ServiceTokenOutput, error) {
	token, err := srv.tokenService.IssueServiceAccessToken(apiKey, srv.serviceTTL)
	if err != nil {
		srv.log(ctx).Warn("Service token request rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue service token")
	}

	return &usecase.ServiceTokenOutput{
		AccessToken: token,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresIn:   srv.serviceTTL.Milliseconds(),
	}, nil
}

func (srv *authService) authOutput(accessToken, refreshToken string) *usecase.AuthOutput {
	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    usecase.TokenTypeBearer,
		AccessTTL:    srv.accessTTL.Milliseconds(),
		RefreshTTL:   srv.refreshTTL.Milliseconds(),
	}
}

// expiryAfter keeps whole seconds: expiresAt = now + ttlMs/1000.
func expiryAfter(now time.Time, ttl time.Duration) time.Time {
	return time.Unix(now.Unix()+ttl.Milliseconds()/1000, 0)
}
