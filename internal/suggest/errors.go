// Package suggest is the client side of the AI suggestion collaborator: it turns a
// resume, job description and conversation into typed suggestions.
package suggest

import "fmt"

// NetworkError represents any failure reaching the suggestion service or reading its reply
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("suggestion service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("suggestion service error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// RequestError represents a request the service cannot act on
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid suggestion request: %s", e.Message)
}
