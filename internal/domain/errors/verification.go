package errors

import "net/http"

// VerificationReason classifies why a signed token was rejected.
type VerificationReason string

const (
	ReasonMalformed        VerificationReason = "MALFORMED"
	ReasonInvalidSignature VerificationReason = "INVALID_SIGNATURE"
	ReasonExpired          VerificationReason = "EXPIRED"
)

// VerificationError is returned by token verification.
type VerificationError struct {
	Reason VerificationReason
	cause  error
}

// NewVerificationError wraps the parser error under a reason.
func NewVerificationError(reason VerificationReason, cause error) *VerificationError {
	return &VerificationError{Reason: reason, cause: cause}
}

func (e *VerificationError) Error() string {
	if e.cause == nil {
		return "token verification failed: " + string(e.Reason)
	}

	return "token verification failed: " + string(e.Reason) + ": " + e.cause.Error()
}

func (e *VerificationError) Unwrap() error { return e.cause }

func (e *VerificationError) HTTPCode() int     { return http.StatusUnauthorized }
func (e *VerificationError) ErrorCode() string { return ErrTokenInvalid.ErrorCode() }
func (e *VerificationError) Message() string   { return ErrTokenInvalid.Message() }
func (e *VerificationError) Details() string   { return string(e.Reason) }

// Is lets errors.Is(err, ErrTokenInvalid) match any verification failure.
func (e *VerificationError) Is(target error) bool {
	return ErrTokenInvalid.Is(target)
}
