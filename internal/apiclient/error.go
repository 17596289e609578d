package apiclient

import "fmt"

// NetworkError covers transport failures and non-success statuses that do
// not carry a usable validation message. Recoverable by retrying the
// action; never fatal.
type NetworkError struct {
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError carries the server's rejection message verbatim so the
// UI can show it next to the offending input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
