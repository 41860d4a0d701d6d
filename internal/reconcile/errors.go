// Package reconcile merges accepted assistant suggestions back into a resume document.
package reconcile

import (
	"fmt"

	"github.com/jonathan/resume-studio/internal/types"
)

// ReconciliationMiss describes an accepted suggestion that could not be applied.
// It is reported, never returned as a failure: the suggestion is still accepted.
type ReconciliationMiss struct {
	SuggestionID string               `json:"suggestionId"`
	Type         types.SuggestionType `json:"type"`
	TargetID     string               `json:"targetId,omitempty"`
	Reason       string               `json:"reason"`
}

func (m *ReconciliationMiss) Error() string {
	return fmt.Sprintf("reconciliation miss: suggestion %s (%s): %s", m.SuggestionID, m.Type, m.Reason)
}

// NotFoundError represents a message or suggestion id that is not in the chat history
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// TransitionError represents a status change the suggestion lifecycle does not allow
type TransitionError struct {
	SuggestionID string
	From         types.SuggestionStatus
	To           types.SuggestionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition for suggestion %s: %s -> %s", e.SuggestionID, e.From, e.To)
}
