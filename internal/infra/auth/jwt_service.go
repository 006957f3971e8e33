package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"authcore/config"
	"authcore/internal/domain/entity"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// refreshTokenBytes gives 256 bits of entropy per refresh token.
const refreshTokenBytes = 32

// jwtService signs RS256 access tokens and mints opaque refresh tokens.
// Apart from reading the key provider it performs no I/O.
type jwtService struct {
	keys        service.KeyProvider
	issuer      string
	serviceKeys []config.ServiceKey
	now         func() time.Time
	parser      *jwt.Parser
}

// Option configures the token service.
type Option func(*jwtService)

// WithClock overrides the time source.
func WithClock(fn func() time.Time) Option {
	return func(s *jwtService) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewJWTService is the fx constructor.
func NewJWTService(cfg *config.Config, keys service.KeyProvider) (service.TokenService, error) {
	if cfg.JWT == nil || strings.TrimSpace(cfg.JWT.Issuer) == "" {
		return nil, errors.New("jwt issuer must be provided")
	}

	return NewTokenService(keys, cfg.JWT.Issuer, cfg.ServiceKeys), nil
}

// NewTokenService builds the engine from its parts.
func NewTokenService(keys service.KeyProvider, issuer string, serviceKeys []config.ServiceKey, opts ...Option) service.TokenService {
	s := &jwtService{
		keys:        keys,
		issuer:      issuer,
		serviceKeys: serviceKeys,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	return s
}

// IssueAccessToken signs a token for the identity valid for ttl.
func (s *jwtService) IssueAccessToken(identity *entity.Identity, ttl time.Duration) (string, error) {
	if identity == nil {
		return "", errors.New("identity is required")
	}
	c := entity.ClaimsFor(identity)

	return s.sign(c.Subject, c.Roles, c.IdentityID, ttl)
}

// IssueServiceAccessToken signs a token whose subject is the service owning apiKey.
func (s *jwtService) IssueServiceAccessToken(apiKey string, ttl time.Duration) (string, error) {
	caller, ok := s.lookupServiceKey(apiKey)
	if !ok {
		return "", errors.WithStack(domainerrors.ErrInvalidServiceAPIKey)
	}

	return s.sign(caller.Name, []string{entity.RoleService.String()}, "", ttl)
}

// lookupServiceKey compares against every configured key in constant time.
func (s *jwtService) lookupServiceKey(apiKey string) (service.ServiceCaller, bool) {
	var (
		found  service.ServiceCaller
		gotOne int
	)
	for _, k := range s.serviceKeys {
		if k.Key == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(k.Key), []byte(apiKey)) == 1 {
			found = service.ServiceCaller{Name: k.Name}
			gotOne = 1
		}
	}

	return found, gotOne == 1
}

func (s *jwtService) sign(subject string, roles []string, identityID string, ttl time.Duration) (string, error) {
	issuedAt := time.Unix(s.now().Unix(), 0)

	claims := &service.Claims{
		Roles:      roles,
		IdentityID: identityID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiryAfter(issuedAt, ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.keys.PrivateKey())
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	return token, nil
}

// expiryAfter keeps whole seconds only: expiresAt = now + ttlMs/1000.
func expiryAfter(now time.Time, ttl time.Duration) time.Time {
	return time.Unix(now.Unix()+ttl.Milliseconds()/1000, 0)
}

// VerifyAccessToken checks signature, issuer and expiry.
func (s *jwtService) VerifyAccessToken(token string) (*service.Claims, error) {
	claims := &service.Claims{}

	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.keys.PublicKey(), nil
	})
	if err != nil {
		return nil, classify(err)
	}

	return claims, nil
}

func classify(err error) *domainerrors.VerificationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.NewVerificationError(domainerrors.ReasonExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerrors.NewVerificationError(domainerrors.ReasonInvalidSignature, err)
	default:
		return domainerrors.NewVerificationError(domainerrors.ReasonMalformed, err)
	}
}

// UsernameFromToken returns the subject of a verified token.
func (s *jwtService) UsernameFromToken(token string) (string, error) {
	claims, err := s.VerifyAccessToken(token)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// ExpiryFromToken returns the expiry of a verified token.
func (s *jwtService) ExpiryFromToken(token string) (time.Time, error) {
	claims, err := s.VerifyAccessToken(token)
	if err != nil {
		return time.Time{}, err
	}

	return claims.ExpiresAt.Time, nil
}

// IssueRefreshToken returns "<random>.<expiry unix>". Clients treat it as opaque.
func (s *jwtService) IssueRefreshToken(expiresAt time.Time) (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf) + "." + strconv.FormatInt(expiresAt.Unix(), 10), nil
}

// HashToken returns the hex SHA-256 of token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// RefreshTokenExpiryHint decodes the expiry suffix written by IssueRefreshToken.
// Values whose random part does not have the issued shape carry no hint.
func (s *jwtService) RefreshTokenExpiryHint(token string) (time.Time, bool) {
	random, suffix, found := strings.Cut(token, ".")
	if !found || random == "" || suffix == "" {
		return time.Time{}, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(random)
	if err != nil || len(raw) != refreshTokenBytes {
		return time.Time{}, false
	}

	unix, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil || unix <= 0 {
		return time.Time{}, false
	}

	return time.Unix(unix, 0), true
}
