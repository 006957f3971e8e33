package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, RequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", RequestID(c))

	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Equal(t, "req-1", RequestIDFromContext(WithRequestID(context.Background(), "req-1")))
}

func TestLoggerOrDefault(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "req-1"))

	assert.Same(t, fallback, LoggerOrDefault(context.Background(), fallback))
	assert.Same(t, scoped, LoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
}

func TestIdentityID(t *testing.T) {
	_, ok := IdentityIDFromContext(context.Background())
	assert.False(t, ok)

	id, ok := IdentityIDFromContext(WithIdentityID(context.Background(), 42))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}

func TestIdempotencyKey(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, IdempotencyKeyFromContext(WithIdempotencyKey(ctx, "")))
	assert.Empty(t, IdempotencyKeyFromContext(WithIdempotencyKey(ctx, strings.Repeat("k", maxIdempotencyKeySize+1))))
	assert.Equal(t, "signup-1", IdempotencyKeyFromContext(WithIdempotencyKey(ctx, "signup-1")))
}
