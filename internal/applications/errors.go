package applications

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned for an unknown application id
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Application not found: %s", e.ID)
}

// ValidationError represents an application that cannot be saved or loaded
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
