// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	domainerrors "authcore/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator validates request DTOs and reports failures as field-level
// domain validation errors keyed by the JSON field name.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the validator with the "past" tag registered for dates.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(dateValue, Date{})
	_ = v.RegisterValidation("past", isPast)

	return &CustomValidator{validate: v}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = describe(fe)
	}

	return domainerrors.NewValidationError(fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "past":
		return "must be in the past"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}

	return name
}

func isPast(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}

	return !t.IsZero() && t.Before(time.Now())
}

// DateLayout is the wire format of Date.
const DateLayout = "2006-01-02"

// Date is a calendar date carried as "2006-01-02" in JSON.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted DateLayout string. null leaves the date zero.
func (d *Date) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "date must be a string")
	}
	if raw == nil {
		d.Time = time.Time{}

		return nil
	}

	t, err := time.Parse(DateLayout, *raw)
	if err != nil {
		return errors.Wrapf(err, "date must use layout %s", DateLayout)
	}
	d.Time = t

	return nil
}

// MarshalJSON writes the date in DateLayout.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func dateValue(field reflect.Value) any {
	if d, ok := field.Interface().(Date); ok {
		return d.Time
	}

	return nil
}
