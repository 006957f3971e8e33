package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "IDENTITY_NOT_FOUND"
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// Response is the envelope every failed request is rendered into.
type Response struct {
	Success   bool       `json:"success"`
	Code      int        `json:"code"`    // HTTP status code
	Message   string     `json:"message"` // User-friendly error message
	Error     *ErrorInfo `json:"error,omitempty"`
	RequestID string     `json:"request_id,omitempty"`
}

// DetailsOf returns the most structured details an AppError can offer.
func DetailsOf(appErr AppError) any {
	if v, ok := appErr.(*ValidationError); ok {
		return v.Fields
	}
	if d := appErr.Details(); d != "" {
		return d
	}

	return nil
}
