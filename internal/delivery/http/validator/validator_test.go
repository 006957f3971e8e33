package validator

import (
	"encoding/json"
	"testing"
	"time"

	domainerrors "authcore/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Username  string    `json:"username" validate:"required,min=3,max=100"`
	Email     string    `json:"email" validate:"required,email,min=6,max=255"`
	BirthDate time.Time `json:"birthDate" validate:"past"`
}

type withDate struct {
	BirthDate Date `json:"birthDate" validate:"required,past"`
}

func TestValidate_Accepts(t *testing.T) {
	err := New().Validate(&sample{
		Username:  "alice",
		Email:     "alice@example.com",
		BirthDate: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
}

func TestValidate_ReportsFieldsByJSONName(t *testing.T) {
	err := New().Validate(&sample{
		Username:  "al",
		Email:     "not-an-email",
		BirthDate: time.Now().Add(24 * time.Hour),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []domainerrors.FieldError{
		{Field: "birthDate", Message: "must be in the past"},
		{Field: "email", Message: "must be a valid email address"},
		{Field: "username", Message: "must be at least 3 characters"},
	}, validationErr.Fields)
}

func TestValidate_Date(t *testing.T) {
	var input withDate
	require.NoError(t, json.Unmarshal([]byte(`{"birthDate":"1990-05-04"}`), &input))
	assert.Equal(t, time.Date(1990, time.May, 4, 0, 0, 0, 0, time.UTC), input.BirthDate.Time)
	assert.NoError(t, New().Validate(&input))

	err := New().Validate(&withDate{})
	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "birthDate", validationErr.Fields[0].Field)

	assert.Error(t, json.Unmarshal([]byte(`{"birthDate":"04/05/1990"}`), &input))
}
