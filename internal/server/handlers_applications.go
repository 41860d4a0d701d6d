package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/applications"
	"github.com/jonathan/resume-studio/internal/store"
)

// defaultSkillLimit is how many skills the dashboard shows unless asked otherwise
const defaultSkillLimit = 20

func (s *Server) applicationService() (*applications.Service, error) {
	if s.deps.Applications == nil {
		return nil, &ErrUnavailable{Feature: "application storage"}
	}
	return s.deps.Applications, nil
}

// parseUUID reads a uuid path value
func parseUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "invalid id format"}
	}
	return id, nil
}

// handleSaveApplication saves a document sent directly, without a session
func (s *Server) handleSaveApplication(w http.ResponseWriter, r *http.Request) {
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}

	var req SaveApplicationRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	st := store.New()
	st.ImportResumeData(*req.Resume)
	if req.ChatHistory != nil {
		st.SetChatHistory(req.ChatHistory)
	}
	st.SetJobDescription(req.JobDescription)

	app, err := svc.Save(r.Context(), st)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListApplications lists saved applications, newest first
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}

	apps, err := svc.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": apps,
		"count":        len(apps),
	})
}

// handleGetApplication returns one saved application
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := parseUUID(r, "id")
	if err != nil {
		s.fail(w, err)
		return
	}

	app, err := svc.Get(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication removes a saved application
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := parseUUID(r, "id")
	if err != nil {
		s.fail(w, err)
		return
	}

	if err := svc.Delete(r.Context(), id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSkillDemand aggregates the skills asked for across saved applications
func (s *Server) handleSkillDemand(w http.ResponseWriter, r *http.Request) {
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}

	limit := defaultSkillLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	counts, err := svc.SkillDemand(r.Context(), limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"skills": counts})
}
