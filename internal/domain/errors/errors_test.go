package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesCopies(t *testing.T) {
	withDetails := ErrRemoteRegistrationFailed.WithDetails(`{"status":503}`)
	withCause := ErrRegistrationFailed.WithCause(errors.New("duplicate key"))

	assert.True(t, errors.Is(withDetails, ErrRemoteRegistrationFailed))
	assert.True(t, errors.Is(errors.Wrap(withCause, "register"), ErrRegistrationFailed))
	assert.False(t, errors.Is(withDetails, ErrRegistrationFailed))
	assert.Equal(t, `{"status":503}`, withDetails.Details())
	assert.Empty(t, ErrRemoteRegistrationFailed.Details())
}

func TestBaseError_WithCauseUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := ErrFatalInconsistency.WithCause(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{
		"username": "must be between 3 and 100 characters",
		"email":    "must be a valid email",
	})

	var appErr AppError
	require.True(t, errors.As(errors.Wrap(err, "bind"), &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "email", err.Fields[0].Field)
	assert.Equal(t, err.Fields, DetailsOf(err))
}

func TestVerificationError(t *testing.T) {
	err := NewVerificationError(ReasonExpired, errors.New("token is expired"))

	assert.True(t, errors.Is(err, ErrTokenInvalid))
	assert.Equal(t, "EXPIRED", err.Details())
	assert.Equal(t, http.StatusUnauthorized, err.HTTPCode())
}
