package service

import (
	"crypto/rsa"
	"time"

	"authcore/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of every access token this service signs.
// IdentityID is empty for service tokens.
type Claims struct {
	Roles      []string `json:"roles"`
	IdentityID string   `json:"identityId,omitempty"`
	jwt.RegisteredClaims
}

// KeyProvider supplies the process-wide signing key pair.
type KeyProvider interface {
	PrivateKey() *rsa.PrivateKey
	PublicKey() *rsa.PublicKey
}

// ServiceCaller is the identity behind a service API key.
type ServiceCaller struct {
	Name string
}

// TokenService signs and verifies access tokens and mints opaque refresh tokens.
// Failed verification always yields a *errors.VerificationError.
type TokenService interface {
	IssueAccessToken(identity *entity.Identity, ttl time.Duration) (string, error)

	// IssueServiceAccessToken signs a token whose subject is the caller behind apiKey.
	IssueServiceAccessToken(apiKey string, ttl time.Duration) (string, error)

	// IssueRefreshToken returns a random bearer secret that embeds its expiry hint.
	IssueRefreshToken(expiresAt time.Time) (string, error)

	VerifyAccessToken(token string) (*Claims, error)
	UsernameFromToken(token string) (string, error)
	ExpiryFromToken(token string) (time.Time, error)

	// HashToken is the storage form of a refresh token.
	HashToken(token string) string

	// RefreshTokenExpiryHint reads the expiry embedded by IssueRefreshToken.
	RefreshTokenExpiryHint(token string) (time.Time, bool)
}
