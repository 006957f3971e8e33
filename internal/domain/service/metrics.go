package service

// Label values used with AuthMetrics.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginUnknownIdentity    = "unknown_identity"
	LoginDisabled           = "disabled"
	LoginError              = "error"

	RegistrationSucceeded    = "success"
	RegistrationRejected     = "rejected"
	RegistrationRemoteError  = "remote_failed"
	RegistrationCompensated  = "compensated"
	RegistrationInconsistent = "fatal_inconsistency"
)

// AuthMetrics records operational counters. Implementations must be safe for concurrent use.
type AuthMetrics interface {
	LoginAttempt(result string)
	RegistrationOutcome(outcome string)
	FatalInconsistency()
	SessionsSwept(count int64)
	BreakerState(name string, state string)
}
