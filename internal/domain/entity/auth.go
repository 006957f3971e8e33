package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents the single live session of an identity.
// Only a SHA-256 hash of the raw token is ever stored.
type RefreshToken struct {
	ID         uuid.UUID // The unique ID for this refresh token record.
	IdentityID int64     // Links this session to the Identity it belongs to.
	TokenHash  string    // Hex SHA-256 of the raw token.
	ExpiresAt  time.Time // Second-granularity expiry.
	CreatedAt  time.Time // When the owning login happened.
}

// IsExpired reports whether the token is past its expiry at now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// ProfileFields is the data the remote profile service stores for a new identity.
type ProfileFields struct {
	Username  string
	Surname   string
	Email     string
	BirthDate time.Time
}

// RemoteProfile is the remote service's view of a created profile.
type RemoteProfile struct {
	ID       int64
	Username string
	Email    string
}
