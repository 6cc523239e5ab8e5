// Package source holds plumbing shared by the external data source clients:
// a typed fetch-boundary error and a rate-limited retrying HTTP client.
package source

// Error represents a failure reaching or reading an external data source.
// Fetch failures abort the whole cycle; the previous snapshot stays
// authoritative, so these errors are surfaced, never swallowed.
type Error struct {
	Source  string // Data source name ("associated_press", "google_sheets")
	Code    string // Error code (e.g. "network_error")
	Message string
	Err     error
}

func (e Error) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e Error) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// NewError creates a new data source error
func NewError(source, code, message string, err error) Error {
	return Error{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
