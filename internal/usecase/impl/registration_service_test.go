package impl

import (
	"context"
	"testing"
	"time"

	"authcore/internal/domain/entity"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/domain/service"
	"authcore/internal/infra/auth"
	mockSvc "authcore/internal/mocks/service"
	"authcore/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type registrationFixture struct {
	svc     usecase.RegistrationUsecase
	store   *memStore
	tokens  service.TokenService
	client  *mockSvc.MockProfileClient
	metrics *recordingMetrics
}

func newRegistrationFixture(t *testing.T) *registrationFixture {
	t.Helper()

	cfg := newTestConfig()
	store := newMemStore()
	metrics := newRecordingMetrics()
	tokens := newTestTokenService(t, cfg, newTestClock())
	client := mockSvc.NewMockProfileClient(t)

	svc := NewRegistrationService(RegistrationServiceParams{
		TxManager:     store,
		Hasher:        auth.NewBcryptHasher(cfg),
		TokenService:  tokens,
		ProfileClient: client,
		Metrics:       metrics,
		Config:        cfg,
		Logger:        newDiscardLogger(),
	})

	return &registrationFixture{svc: svc, store: store, tokens: tokens, client: client, metrics: metrics}
}

func (f *registrationFixture) isServiceBearer(bearer string) bool {
	claims, err := f.tokens.VerifyAccessToken(bearer)

	return err == nil && claims.Subject == testServiceName
}

func aliceInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:  "alice",
		Surname:   "Liddell",
		Password:  "password123",
		BirthDate: time.Date(1990, time.May, 4, 0, 0, 0, 0, time.UTC),
		Email:     "alice@example.com",
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.MatchedBy(func(fields entity.ProfileFields) bool {
			return fields.Username == "alice" && fields.Surname == "Liddell" && fields.Email == "alice@example.com"
		}), mock.MatchedBy(f.isServiceBearer)).
		Return(&entity.RemoteProfile{ID: 42, Username: "alice", Email: "alice@example.com"}, nil).
		Once()

	out, err := f.svc.Register(ctx, aliceInput(), entity.RoleUser)
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.Identity.ID)
	assert.True(t, out.Identity.Enabled)
	assert.Equal(t, []string{"ROLE_USER"}, out.Identity.Roles.Names())
	assert.NotEqual(t, "password123", out.Identity.PasswordHash)

	stored, ok := f.store.identity(42)
	require.True(t, ok)
	assert.Equal(t, "alice", stored.Username)
	assert.True(t, auth.NewBcryptHasher(newTestConfig()).Check("password123", stored.PasswordHash))
	assert.Equal(t, 1, f.metrics.registrations[service.RegistrationSucceeded])
}

func TestRegistrationService_Register_DuplicateIsRejectedLocally(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()

	f.store.seedIdentity(entity.Identity{ID: 7, Username: "alice", Email: "someone@example.com"})

	_, err := f.svc.Register(ctx, aliceInput(), entity.RoleUser)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityAlreadyExists))

	input := aliceInput()
	input.Username = "alice2"
	input.Email = "someone@example.com"

	_, err = f.svc.Register(ctx, input, entity.RoleUser)
	assert.True(t, errors.Is(err, domainerrors.ErrIdentityAlreadyExists))

	f.client.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 2, f.metrics.registrations[service.RegistrationRejected])
}

func TestRegistrationService_Register_UnknownRole(t *testing.T) {
	f := newRegistrationFixture(t)

	_, err := f.svc.Register(context.Background(), aliceInput(), entity.RoleName("ROLE_MISSING"))

	assert.True(t, errors.Is(err, domainerrors.ErrRoleNotFound))
	assert.Equal(t, 0, f.store.identityCount())
}

func TestRegistrationService_Register_RemoteFailureLeavesNoIdentity(t *testing.T) {
	f := newRegistrationFixture(t)

	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &service.RemoteCallError{StatusCode: 503, Payload: `{"error":"unavailable"}`}).
		Once()

	_, err := f.svc.Register(context.Background(), aliceInput(), entity.RoleUser)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRemoteRegistrationFailed))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, `{"error":"unavailable"}`, appErr.Details())

	assert.Equal(t, 0, f.store.identityCount())
	assert.Equal(t, 1, f.metrics.registrations[service.RegistrationRemoteError])
}

func TestRegistrationService_Register_RemoteWithoutIDIsRejected(t *testing.T) {
	f := newRegistrationFixture(t)

	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.RemoteProfile{Username: "alice"}, nil).
		Once()

	_, err := f.svc.Register(context.Background(), aliceInput(), entity.RoleUser)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRemoteRegistrationFailed))
	_, ok := f.store.identity(0)
	assert.False(t, ok)
	assert.Equal(t, 0, f.store.identityCount())
	f.client.AssertNotCalled(t, "DeleteProfile", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, f.metrics.registrations[service.RegistrationRemoteError])
}

func TestRegistrationService_Register_CompensatesWhenLocalCommitFails(t *testing.T) {
	f := newRegistrationFixture(t)

	// Another registration takes the username between the local check and the commit.
	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, entity.ProfileFields, string) (*entity.RemoteProfile, error) {
			f.store.seedIdentity(entity.Identity{ID: 7, Username: "alice", Email: "other@example.com"})

			return &entity.RemoteProfile{ID: 42, Username: "alice"}, nil
		}).
		Once()
	f.client.EXPECT().
		DeleteProfile(mock.Anything, int64(42), mock.MatchedBy(f.isServiceBearer)).
		Return(nil).
		Once()

	_, err := f.svc.Register(context.Background(), aliceInput(), entity.RoleUser)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRegistrationFailed))
	assert.False(t, errors.Is(err, domainerrors.ErrFatalInconsistency))

	_, ok := f.store.identity(42)
	assert.False(t, ok)
	assert.Equal(t, 1, f.metrics.registrations[service.RegistrationCompensated])
	assert.Equal(t, 0, f.metrics.fatal)
}

func TestRegistrationService_Register_FailedCompensationIsFatal(t *testing.T) {
	f := newRegistrationFixture(t)

	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, entity.ProfileFields, string) (*entity.RemoteProfile, error) {
			f.store.seedIdentity(entity.Identity{ID: 42, Username: "carol", Email: "carol@example.com"})

			return &entity.RemoteProfile{ID: 42, Username: "alice"}, nil
		}).
		Once()
	f.client.EXPECT().
		DeleteProfile(mock.Anything, int64(42), mock.Anything).
		Return(errors.New("profile service failed after 3 attempt(s)")).
		Once()

	_, err := f.svc.Register(context.Background(), aliceInput(), entity.RoleUser)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFatalInconsistency))
	assert.Equal(t, 1, f.metrics.fatal)
	assert.Equal(t, 1, f.metrics.registrations[service.RegistrationInconsistent])
}

func TestRegistrationService_Register_CompensationIgnoresCancelledRequest(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, entity.ProfileFields, string) (*entity.RemoteProfile, error) {
			f.store.seedIdentity(entity.Identity{ID: 9, Username: "alice", Email: "x@example.com"})
			cancel()

			return &entity.RemoteProfile{ID: 42}, nil
		}).
		Once()
	f.client.EXPECT().
		DeleteProfile(mock.Anything, int64(42), mock.Anything).
		RunAndReturn(func(ctx context.Context, _ int64, _ string) error {
			return ctx.Err()
		}).
		Once()

	_, err := f.svc.Register(ctx, aliceInput(), entity.RoleUser)

	assert.True(t, errors.Is(err, domainerrors.ErrRegistrationFailed))
}

func TestRegistrationService_RegisteredIdentityCanLogIn(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	cfg := newTestConfig()

	f.client.EXPECT().
		CreateProfile(mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.RemoteProfile{ID: 42, Username: "alice", Email: "a@x.com"}, nil).
		Once()

	input := aliceInput()
	input.Email = "a@x.com"
	input.Password = "secret1"

	out, err := f.svc.Register(ctx, input, entity.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.Identity.ID)
	assert.Equal(t, []string{"ROLE_USER"}, out.Identity.Roles.Names())

	authSvc := NewAuthService(AuthServiceParams{
		TxManager:    f.store,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: f.tokens,
		Metrics:      newRecordingMetrics(),
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	login, err := authSvc.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, cfg.JWT.RefreshTTL.Milliseconds(), login.RefreshTTL)
	assert.Len(t, f.store.tokensOf(42), 1)
}
