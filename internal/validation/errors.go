// Package validation computes page geometry and detects content overflow for rendered resumes.
package validation

import "fmt"

// MeasureError represents a failure measuring rendered content height
type MeasureError struct {
	Message string
	Cause   error
}

func (e *MeasureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("measure error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("measure error: %s", e.Message)
}

func (e *MeasureError) Unwrap() error {
	return e.Cause
}
