package middleware

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	deliverycontext "authcore/internal/delivery/context"
	domainerrors "authcore/internal/domain/errors"
	"authcore/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	ContextKeyClaims = "claims"
	ContextKeyRoles  = "roles"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate verifies the bearer access token and stores its claims on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c)
		if !ok {
			return domainerrors.ErrTokenInvalid.WithDetails("missing bearer token")
		}

		claims, err := m.tokenSvc.VerifyAccessToken(token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyRoles, claims.Roles)

		// Service tokens carry no identity.
		if id, err := strconv.ParseInt(claims.IdentityID, 10, 64); err == nil {
			ctx := c.Request().Context()
			logger := deliverycontext.LoggerOrDefault(ctx, slog.Default()).With(slog.Int64("identity_id", id))
			ctx = deliverycontext.WithIdentityID(ctx, id)
			ctx = deliverycontext.WithLogger(ctx, logger)
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(ContextKeyRoles).([]string)
			if !slices.Contains(roles, requiredRole) {
				return domainerrors.ErrForbidden.WithDetails("requires role " + requiredRole)
			}

			return next(c)
		}
	}
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// IdentityID returns the identity of an identity-bound access token.
func IdentityID(c echo.Context) (int64, bool) {
	return deliverycontext.IdentityIDFromContext(c.Request().Context())
}
