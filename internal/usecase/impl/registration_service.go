package impl

import (
	"context"
	"fmt"
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

// registrationService implements the RegistrationUsecase interface.
//
// The remote profile service assigns identity IDs, so the remote create always
// runs before the local commit. A failed local commit is undone by deleting the
// remote profile again.
type registrationService struct {
	txManager     repository.TransactionManager
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	profileClient service.ProfileClient
	metrics       service.AuthMetrics
	apiKey        string
	serviceTTL    time.Duration
	logger        *slog.Logger
}

// RegistrationServiceParams holds dependencies for RegistrationService, injected by Fx.
type RegistrationServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	ProfileClient service.ProfileClient
	Metrics       service.AuthMetrics
	Config        *config.Config
	Logger        *slog.Logger
}

// NewRegistrationService is the constructor for registrationService.
func NewRegistrationService(params RegistrationServiceParams) usecase.RegistrationUsecase {
	return &registrationService{
		txManager:     params.TxManager,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		profileClient: params.ProfileClient,
		metrics:       params.Metrics,
		apiKey:        params.Config.ProfileService.APIKey,
		serviceTTL:    params.Config.JWT.ServiceTTL,
		logger:        params.Logger,
	}
}

func (srv *registrationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.LoggerOrDefault(ctx, srv.logger)
}

// Register creates the identity remotely, then locally, compensating the remote
// create when the local commit fails.
func (srv *registrationService) Register(ctx context.Context, input *usecase.RegisterInput, roleName entity.RoleName) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username), slog.String("role", roleName.String()))

	role, err := srv.checkAvailability(ctx, input, roleName)
	if err != nil {
		srv.metrics.RegistrationOutcome(service.RegistrationRejected)
		srv.log(ctx).Warn("Registration rejected", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "registration rejected")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.metrics.RegistrationOutcome(service.RegistrationRejected)

		return nil, domainerrors.ErrPasswordHashFailed.WithCause(err)
	}

	identity := &entity.Identity{
		Username:     input.Username,
		PasswordHash: passwordHash,
		Email:        input.Email,
		Roles:        entity.Roles{*role},
		Enabled:      true,
	}

	remote, err := srv.createRemoteProfile(ctx, input)
	if err != nil {
		srv.metrics.RegistrationOutcome(service.RegistrationRemoteError)
		srv.log(ctx).Warn("Remote profile creation failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	identity.ID = remote.ID

	if err := srv.persistIdentity(ctx, identity); err != nil {
		return nil, srv.compensate(ctx, remote.ID, err)
	}

	srv.metrics.RegistrationOutcome(service.RegistrationSucceeded)
	srv.log(ctx).Info("Registration completed", slog.Int64("identityID", identity.ID), slog.String("username", identity.Username))

	return &usecase.RegisterOutput{Identity: identity}, nil
}

func (srv *registrationService) checkAvailability(ctx context.Context, input *usecase.RegisterInput, roleName entity.RoleName) (*entity.Role, error) {
	var role *entity.Role

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		identityRepo := repoFactory.IdentityRepo()

		taken, err := identityRepo.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return errors.Wrap(err, "failed to check username")
		}
		if taken {
			return domainerrors.ErrIdentityAlreadyExists.WithDetails("username already registered")
		}

		taken, err = identityRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email")
		}
		if taken {
			return domainerrors.ErrIdentityAlreadyExists.WithDetails("email already registered")
		}

		role, err = repoFactory.RoleRepo().FindByName(ctx, roleName)
		if err != nil {
			if errors.Is(err, repository.ErrRoleNotFound) {
				return domainerrors.ErrRoleNotFound.WithDetails(roleName.String())
			}

			return errors.Wrap(err, "failed to resolve role")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

func (srv *registrationService) createRemoteProfile(ctx context.Context, input *usecase.RegisterInput) (*entity.RemoteProfile, error) {
	bearer, err := srv.tokenService.IssueServiceAccessToken(srv.apiKey, srv.serviceTTL)
	if err != nil {
		return nil, domainerrors.ErrRemoteRegistrationFailed.WithDetails("no service credentials").WithCause(err)
	}

	remote, err := srv.profileClient.CreateProfile(ctx, entity.ProfileFields{
		Username:  input.Username,
		Surname:   input.Surname,
		Email:     input.Email,
		BirthDate: input.BirthDate,
	}, bearer)
	if err != nil {
		return nil, domainerrors.ErrRemoteRegistrationFailed.WithDetails(upstreamPayload(err)).WithCause(err)
	}
	// The local row takes the remote id as its primary key.
	if remote == nil || remote.ID <= 0 {
		return nil, domainerrors.ErrRemoteRegistrationFailed.WithDetails("profile service assigned no identity id")
	}

	return remote, nil
}

func (srv *registrationService) persistIdentity(ctx context.Context, identity *entity.Identity) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.IdentityRepo().Create(ctx, identity); err != nil {
			return errors.Wrap(err, "failed to persist identity")
		}

		return nil
	})
}

// compensate deletes the remote profile created for a registration whose local
// commit failed. It is attempted once through the client's resilience policy.
func (srv *registrationService) compensate(ctx context.Context, remoteID int64, cause error) error {
	ctx = context.WithoutCancel(ctx)
	srv.log(ctx).Warn("Local commit failed, deleting remote profile", slog.Int64("remoteID", remoteID), slog.Any("error", cause))

	bearer, err := srv.tokenService.IssueServiceAccessToken(srv.apiKey, srv.serviceTTL)
	if err == nil {
		err = srv.profileClient.DeleteProfile(ctx, remoteID, bearer)
	}

	if err != nil {
		srv.metrics.FatalInconsistency()
		srv.metrics.RegistrationOutcome(service.RegistrationInconsistent)
		srv.log(ctx).Error("Remote profile left without local identity",
			slog.String("event", "fatal_inconsistency"),
			slog.Int64("remoteID", remoteID),
			slog.Any("cause", cause),
			slog.Any("error", err),
		)

		return domainerrors.ErrFatalInconsistency.
			WithDetails(fmt.Sprintf("remote profile %d requires manual reconciliation", remoteID)).
			WithCause(errors.Wrapf(err, "compensation failed after: %v", cause))
	}

	srv.metrics.RegistrationOutcome(service.RegistrationCompensated)

	return domainerrors.ErrRegistrationFailed.WithCause(cause)
}

func upstreamPayload(err error) string {
	var remoteErr *service.RemoteCallError
	if errors.As(err, &remoteErr) && remoteErr.Payload != "" {
		return remoteErr.Payload
	}

	return err.Error()
}
