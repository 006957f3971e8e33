// Package context carries request-scoped values between the delivery layer,
// usecases and outbound clients.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyLogger
	keyIdentityID
	keyIdempotencyKey
)

// echoKeyRequestID stores the request ID on echo.Context for the response envelope.
const echoKeyRequestID = "request_id"

const (
	HeaderXRequestID      = echo.HeaderXRequestID
	HeaderIdempotencyKey  = "Idempotency-Key"
	maxIdempotencyKeySize = 128
)

// RequestID returns the ID set by the request ID middleware, or "" outside a request.
func RequestID(c echo.Context) string {
	id, _ := c.Get(echoKeyRequestID).(string)

	return id
}

func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// LoggerOrDefault returns the request-scoped logger, falling back when none is set.
func LoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithIdentityID records the identity an access token was issued to.
func WithIdentityID(ctx context.Context, identityID int64) context.Context {
	return context.WithValue(ctx, keyIdentityID, identityID)
}

func IdentityIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(keyIdentityID).(int64)

	return id, ok
}

// WithIdempotencyKey carries a caller supplied key to outbound creates so a
// retried registration reuses it. Empty or oversized keys are ignored.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" || len(key) > maxIdempotencyKeySize {
		return ctx
	}

	return context.WithValue(ctx, keyIdempotencyKey, key)
}

func IdempotencyKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(keyIdempotencyKey).(string)

	return key
}
