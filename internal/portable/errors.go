package portable

import "fmt"

// FormatMessage is the user-facing text for any rejected import
const FormatMessage = "Invalid JSON file or corrupted resume data"

// FormatError is returned when an imported file is not a usable resume document
type FormatError struct {
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", FormatMessage, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", FormatMessage, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
