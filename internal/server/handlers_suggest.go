package server

import (
	"net/http"
	"time"

	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/skills"
	"github.com/jonathan/resume-studio/internal/suggest"
)

// ExtractResponse is the job info pulled from a description, with the skill
// gap when a resume was supplied
type ExtractResponse struct {
	*suggest.JobInfo
	Gap *skills.Gap `json:"gap,omitempty"`
}

func (s *Server) suggestService() (suggest.Service, error) {
	if s.deps.Suggest == nil {
		return nil, &ErrUnavailable{Feature: "suggestion service"}
	}
	return s.deps.Suggest, nil
}

// handleSuggestions forwards a suggestion request to the configured service
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	svc, err := s.suggestService()
	if err != nil {
		s.fail(w, err)
		return
	}

	var req suggest.Request
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, err)
		return
	}

	start := time.Now()
	resp, err := svc.Suggest(r.Context(), req)
	s.metrics.ObserveSuggestion(err, time.Since(start))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExtract pulls skills and company name out of a job description
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	svc, err := s.suggestService()
	if err != nil {
		s.fail(w, err)
		return
	}

	var req ExtractRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	info, err := svc.ExtractJobInfo(r.Context(), req.JobDescription)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := ExtractResponse{JobInfo: info}
	if req.Resume != nil {
		gap := skills.FindGap(req.Resume, info.Skills)
		resp.Gap = &gap
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFetchJobDescription downloads a job posting and returns its text
func (s *Server) handleFetchJobDescription(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := fetch.ValidateURL(req.URL); err != nil {
		s.fail(w, &ErrValidation{Field: "URL", Message: err.Error()})
		return
	}

	result, err := fetch.JobPosting(r.Context(), req.URL, s.deps.FetchOptions, s.deps.RenderPage)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
