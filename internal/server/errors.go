package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/applications"
	"github.com/jonathan/resume-studio/internal/assistant"
	"github.com/jonathan/resume-studio/internal/browser"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/portable"
	"github.com/jonathan/resume-studio/internal/reconcile"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/suggest"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates an unknown or expired session id
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrTooManySessions indicates the session registry is full
type ErrTooManySessions struct {
	Max int
}

func (e *ErrTooManySessions) Error() string {
	return fmt.Sprintf("session limit of %d reached", e.Max)
}

// ErrUnavailable indicates a feature whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// validationError converts validator output to the first failing field
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
	}
	return &ErrValidation{Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		sessionErr     *ErrSessionNotFound
		fullErr        *ErrTooManySessions
		unavailableErr *ErrUnavailable
		formatErr      *portable.FormatError
		schemaErr      *schemas.ValidationError
		appNotFound    *applications.NotFoundError
		appInvalid     *applications.ValidationError
		requestErr     *suggest.RequestError
		networkErr     *suggest.NetworkError
		circuitErr     *llm.CircuitOpenError
		suggestionErr  *reconcile.NotFoundError
		transitionErr  *reconcile.TransitionError
		fetchErr       *fetch.Error
		browserErr     *browser.Error
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &formatErr), errors.As(err, &schemaErr),
		errors.As(err, &appInvalid), errors.As(err, &requestErr), errors.Is(err, assistant.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.As(err, &sessionErr), errors.As(err, &appNotFound), errors.As(err, &suggestionErr):
		return http.StatusNotFound
	case errors.As(err, &transitionErr):
		return http.StatusConflict
	case errors.As(err, &fullErr), errors.As(err, &unavailableErr), errors.As(err, &circuitErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &networkErr), errors.As(err, &fetchErr), errors.As(err, &browserErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
