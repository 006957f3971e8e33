package usecase

import (
	"context"
)

// SessionUsecase manages refresh tokens outside of the login/refresh flow.
type SessionUsecase interface {
	// RevokeAllSessions deletes every refresh token of the identity and reports how many were removed.
	RevokeAllSessions(ctx context.Context, identityID int64) (int64, error)

	// CleanupExpiredSessions deletes every refresh token past its expiry.
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}
