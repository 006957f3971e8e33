package impl

import (
	"context"
	"testing"
	"time"

	"authcore/internal/domain/entity"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/domain/repository"
	mockRepo "authcore/internal/mocks/repository"
	mockSvc "authcore/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_RevokeAllSessions_Success(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	metrics := mockSvc.NewMockAuthMetrics(t)
	service := NewSessionService(SessionServiceParams{TxManager: txManager, Metrics: metrics, Logger: newDiscardLogger()})

	ctx := context.Background()

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)
			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)

			mockIdentityRepo.EXPECT().FindByID(ctx, int64(42)).Return(&entity.Identity{ID: 42}, nil)
			mockRefreshRepo.EXPECT().DeleteByIdentityID(ctx, int64(42)).Return(int64(1), nil)

			return fn(mockFactory)
		})

	removed, err := service.RevokeAllSessions(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestSessionService_RevokeAllSessions_UnknownIdentity(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewSessionService(SessionServiceParams{TxManager: txManager, Metrics: mockSvc.NewMockAuthMetrics(t), Logger: newDiscardLogger()})

	ctx := context.Background()

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockIdentityRepo := mockRepo.NewMockIdentityRepository(t)

			mockFactory.EXPECT().IdentityRepo().Return(mockIdentityRepo)
			mockIdentityRepo.EXPECT().FindByID(ctx, int64(7)).Return(nil, repository.ErrIdentityNotFound)

			return fn(mockFactory)
		})

	_, err := service.RevokeAllSessions(ctx, 7)

	assert.True(t, errors.Is(err, domainerrors.ErrIdentityNotFound))
}

func TestSessionService_CleanupExpiredSessions(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	metrics := mockSvc.NewMockAuthMetrics(t)
	svc := NewSessionService(SessionServiceParams{TxManager: txManager, Metrics: metrics, Logger: newDiscardLogger()})

	now := time.Unix(1_700_000_000, 0)
	svc.(*sessionService).now = func() time.Time { return now }

	ctx := context.Background()

	txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockRefreshRepo := mockRepo.NewMockRefreshTokenRepository(t)

			mockFactory.EXPECT().RefreshTokenRepo().Return(mockRefreshRepo)
			mockRefreshRepo.EXPECT().DeleteExpired(ctx, now).Return(int64(3), nil)

			return fn(mockFactory)
		})
	metrics.EXPECT().SessionsSwept(int64(3)).Return()

	removed, err := svc.CleanupExpiredSessions(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestSessionService_CleanupExpiredSessions_Error(t *testing.T) {
	txManager := mockRepo.NewMockTransactionManager(t)
	svc := NewSessionService(SessionServiceParams{TxManager: txManager, Metrics: mockSvc.NewMockAuthMetrics(t), Logger: newDiscardLogger()})

	dbErr := errors.New("database unavailable")
	txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		Return(dbErr)

	_, err := svc.CleanupExpiredSessions(context.Background())

	assert.True(t, errors.Is(err, dbErr))
}

func TestSessionService_CleanupSweepsOnlyExpiredTokens(t *testing.T) {
	store := newMemStore()
	metrics := newRecordingMetrics()
	svc := NewSessionService(SessionServiceParams{TxManager: store, Metrics: metrics, Logger: newDiscardLogger()})

	now := time.Unix(1_700_000_000, 0)
	svc.(*sessionService).now = func() time.Time { return now }

	for i, expiresAt := range []time.Time{now.Add(-time.Second), now, now.Add(time.Second)} {
		identityID := int64(i + 1)
		store.seedIdentity(entity.Identity{ID: identityID})
		require.NoError(t, store.Execute(context.Background(), func(f repository.RepositoryFactory) error {
			return f.RefreshTokenRepo().Create(context.Background(), &entity.RefreshToken{
				IdentityID: identityID,
				TokenHash:  string(rune('a' + i)),
				ExpiresAt:  expiresAt,
			})
		}))
	}

	removed, err := svc.CleanupExpiredSessions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Len(t, store.tokensOf(3), 1)
	assert.Equal(t, int64(2), metrics.swept)
}
