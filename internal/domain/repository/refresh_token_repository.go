package repository

import (
	"context"
	"time"

	"authcore/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when a refresh token is not found.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// ErrRefreshTokenConflict is returned when the identity already holds a refresh token.
var ErrRefreshTokenConflict = errors.New("identity already holds a refresh token")

// RefreshTokenRepository is the refresh token store. Lookups do not filter
// expired rows; callers decide what an expired row means.
type RefreshTokenRepository interface {
	// Create returns ErrRefreshTokenConflict when the identity already holds a token.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a refresh token record by its stored hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByID returns ErrRefreshTokenNotFound when nothing was deleted.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// DeleteByIdentityID removes every token of the identity and reports how many were removed.
	DeleteByIdentityID(ctx context.Context, identityID int64) (int64, error)

	// DeleteExpired removes all tokens whose expiry is not after now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
