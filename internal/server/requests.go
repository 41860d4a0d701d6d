package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/resume-studio/internal/types"
)

// maxRequestBody bounds JSON request bodies. Inline profile images make
// documents large, so this sits well above the portable file cap.
const maxRequestBody = 10 << 20

// RenderRequest is the body of the stateless render endpoints
type RenderRequest struct {
	Resume   *types.ResumeDocument `json:"resume" validate:"required"`
	Template types.TemplateID      `json:"template,omitempty"`
}

// GalleryRequest renders one document with every template
type GalleryRequest struct {
	Resume *types.ResumeDocument `json:"resume" validate:"required"`
}

// ExportRequest is the body of POST /portable/export
type ExportRequest struct {
	Resume *types.ResumeDocument `json:"resume" validate:"required"`
}

// ExtractRequest asks for job info, optionally compared against a resume
type ExtractRequest struct {
	JobDescription string                `json:"jobDescription" validate:"required"`
	Resume         *types.ResumeDocument `json:"resume,omitempty"`
}

// FetchRequest is the body of POST /job-description/fetch
type FetchRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ChatRequest is a user chat message
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// SaveApplicationRequest saves a document without a session
type SaveApplicationRequest struct {
	Resume         *types.ResumeDocument `json:"resume" validate:"required"`
	JobDescription string                `json:"jobDescription"`
	ChatHistory    []types.ChatMessage   `json:"chatHistory,omitempty"`
}

// decodeJSON reads a bounded JSON body into dst and runs struct validation
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &ErrValidation{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		case errors.Is(err, io.EOF):
			return &ErrValidation{Message: "request body is empty"}
		default:
			return &ErrValidation{Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}
