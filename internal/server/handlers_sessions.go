package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-studio/internal/portable"
	"github.com/jonathan/resume-studio/internal/reconcile"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
	"github.com/jonathan/resume-studio/internal/validation"
)

// keepAliveInterval spaces comment lines on idle event streams
const keepAliveInterval = 15 * time.Second

// SessionResponse describes a session and its current state
type SessionResponse struct {
	ID        string                     `json:"id"`
	CreatedAt time.Time                  `json:"createdAt"`
	State     store.State                `json:"state"`
	Overflow  *validation.OverflowReport `json:"overflow,omitempty"`
}

// ResolutionResponse is the result of accepting or rejecting a suggestion.
// A reconciliation miss is not an error: the suggestion is still accepted.
type ResolutionResponse struct {
	Action  string                        `json:"action"`
	Applied bool                          `json:"applied"`
	Miss    *reconcile.ReconciliationMiss `json:"miss,omitempty"`
	State   store.State                   `json:"state"`
}

func sessionResponse(sess *Session) SessionResponse {
	resp := SessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt, State: sess.Store.Snapshot()}
	if report, ok := sess.Watcher.Latest(); ok {
		resp.Overflow = &report
	}
	return resp
}

// session resolves the {id} path value, writing the error response on failure
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.fail(w, err)
		return nil, false
	}
	return sess, true
}

// fieldSetter decodes a JSON value and applies it to the store
type fieldSetter func(st *store.Store, raw json.RawMessage) error

func setter[T any](apply func(*store.Store, T), checks ...func(T) error) fieldSetter {
	return func(st *store.Store, raw json.RawMessage) error {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return &ErrValidation{Field: "value", Message: err.Error()}
		}
		for _, check := range checks {
			if err := check(v); err != nil {
				return err
			}
		}
		apply(st, v)
		return nil
	}
}

func checkPageFormat(f types.PageFormat) error {
	if f != types.PageFormatLetter && f != types.PageFormatA4 {
		return &ErrValidation{Field: "pageFormat", Message: fmt.Sprintf("unknown page format %q", f)}
	}
	return nil
}

func checkFontSize(f types.FontSize) error {
	switch f {
	case types.FontSizeSmall, types.FontSizeMedium, types.FontSizeLarge:
		return nil
	}
	return &ErrValidation{Field: "fontSize", Message: fmt.Sprintf("unknown font size %q", f)}
}

// fieldSetters maps the {field} path value to its store operation
var fieldSetters = map[string]fieldSetter{
	"summary":         setter((*store.Store).UpdateSummary),
	"experience":      setter((*store.Store).UpdateExperience),
	"education":       setter((*store.Store).UpdateEducation),
	"projects":        setter((*store.Store).UpdateProjects),
	"skills":          setter((*store.Store).UpdateSkills),
	"customSections":  setter((*store.Store).UpdateCustomSections),
	"sections":        setter((*store.Store).UpdateSections),
	"colors":          setter((*store.Store).UpdateColors),
	"template":        setter((*store.Store).UpdateTemplate),
	"pageFormat":      setter((*store.Store).UpdatePageFormat, checkPageFormat),
	"fontSize":        setter((*store.Store).UpdateFontSize, checkFontSize),
	"fontFamily":      setter((*store.Store).UpdateFontFamily),
	"isEditing":       setter((*store.Store).SetEditing),
	"selectedSection": setter((*store.Store).SetSelectedSection),
	"jobDescription":  setter((*store.Store).SetJobDescription),
}

// handleCreateSession starts a session holding the default document
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, sessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePersonalInfo merges the present fields into the personal info
func (s *Server) handlePersonalInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var patch store.PersonalInfoPatch
	if err := s.decodeJSON(w, r, &patch); err != nil {
		s.fail(w, err)
		return
	}
	if patch.IsEmpty() {
		s.fail(w, &ErrValidation{Message: "no personal info fields given"})
		return
	}

	sess.Store.UpdatePersonalInfo(patch)
	s.jsonResponse(w, http.StatusOK, sessionResponse(sess))
}

// handleUpdateField replaces one top-level field. The body is {"value": ...}.
func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	field := r.PathValue("field")
	set, known := fieldSetters[field]
	if !known {
		s.fail(w, &ErrValidation{Field: "field", Message: fmt.Sprintf("unknown field %q", field)})
		return
	}

	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := s.decodeJSON(w, r, &body); err != nil {
		s.fail(w, err)
		return
	}
	if len(body.Value) == 0 {
		s.fail(w, &ErrValidation{Field: "value", Message: "required"})
		return
	}

	if err := set(sess.Store, body.Value); err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	sess.Store.ResetResume()
	s.jsonResponse(w, http.StatusOK, sessionResponse(sess))
}

// handleSessionImport replaces the document with an uploaded portable file.
// An invalid file leaves the session untouched.
func (s *Server) handleSessionImport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	doc, err := readPortable(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	sess.Store.ImportResumeData(*doc)
	s.jsonResponse(w, http.StatusOK, sessionResponse(sess))
}

func (s *Server) handleSessionExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	doc := sess.Store.ExportResumeData()
	s.writePortable(w, &doc)
}

// handleChat sends a user message through the assistant. Service failures come
// back as an assistant message, not an error status.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.assistant == nil {
		s.fail(w, &ErrUnavailable{Feature: "suggestion service"})
		return
	}

	var req ChatRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	ex, err := s.assistant.SendMessage(r.Context(), sess.Store, req.Message)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ex)
}

// handleResolveSuggestion accepts or rejects one pending suggestion
func (s *Server) handleResolveSuggestion(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	messageID := r.PathValue("message_id")
	suggestionID := r.PathValue("suggestion_id")
	action := r.PathValue("action")

	resp := ResolutionResponse{Action: action}
	switch action {
	case "accept":
		outcome, err := sess.Store.AcceptSuggestion(messageID, suggestionID)
		if err != nil {
			s.fail(w, err)
			return
		}
		if outcome.Miss != nil {
			log.Printf("[sessions] %s: %v", sess.ID, outcome.Miss)
		}
		resp.Applied = outcome.Applied
		resp.Miss = outcome.Miss
	case "reject":
		if err := sess.Store.RejectSuggestion(messageID, suggestionID); err != nil {
			s.fail(w, err)
			return
		}
	default:
		s.fail(w, &ErrValidation{Field: "action", Message: "must be accept or reject"})
		return
	}

	s.metrics.ObserveResolution(action, resp.Applied)
	resp.State = sess.Store.Snapshot()
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSessionTree returns the laid-out visual tree of the current document
func (s *Server) handleSessionTree(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	doc := sess.Store.ExportResumeData()
	resp := s.renderResponse(&doc, "")
	if report, ok := sess.Watcher.Latest(); ok && report.PageFormat == doc.PageFormat {
		resp.Overflow = report
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSessionPreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	doc := sess.Store.ExportResumeData()
	s.writePage(w, &doc, "")
}

// handleSessionLayout computes the preview scale for a container given by the
// width and height query parameters
func (s *Server) handleSessionLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	width, err := floatParam(r, "width", validation.DefaultContainerWidth)
	if err != nil {
		s.fail(w, err)
		return
	}
	height, err := floatParam(r, "height", validation.DefaultContainerHeight)
	if err != nil {
		s.fail(w, err)
		return
	}

	doc := sess.Store.ExportResumeData()
	resp := map[string]any{"layout": validation.ComputeLayout(doc.PageFormat, width, height)}
	if report, ok := sess.Watcher.Latest(); ok {
		resp["overflow"] = report
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func floatParam(r *http.Request, name string, fallback float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, &ErrValidation{Field: name, Message: "must be a positive number"}
	}
	return f, nil
}

// handleSessionPDF prints the current document through the headless browser
func (s *Server) handleSessionPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if s.deps.PrintPDF == nil {
		s.fail(w, &ErrUnavailable{Feature: "PDF printing"})
		return
	}

	doc := sess.Store.ExportResumeData()
	pdf, err := s.deps.PrintPDF(r.Context(), &doc)
	if err != nil {
		s.fail(w, err)
		return
	}

	name := strings.TrimSuffix(portable.Filename(time.Now()), ".json") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[pdf] failed to write response: %v", err)
	}
}

// handleSessionEvents streams change and overflow events until the client
// disconnects or the session ends. The first event carries the current state.
func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	// streams outlive the server write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	sse, err := NewSSEWriter(w)
	if errors.Is(err, errStreamingUnsupported) {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err != nil {
		return
	}
	events, cancel := sess.Subscribe()
	defer cancel()

	if err := sse.Send(Event{Name: "state", Data: sessionResponse(sess)}); err != nil {
		return
	}

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, open := <-events:
			if !open {
				_ = sse.Send(Event{Name: "closed", Data: map[string]string{"id": sess.ID}})
				return
			}
			if err := sse.Send(e); err != nil {
				log.Printf("[sessions] %s: event stream write failed: %v", sess.ID, err)
				return
			}
		case <-keepAlive.C:
			if err := sse.KeepAlive(); err != nil {
				return
			}
		}
	}
}

// handleSessionSave stores the session as a saved application
func (s *Server) handleSessionSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}

	app, err := svc.Save(r.Context(), sess.Store)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleSessionLoad replaces the session's document, chat and job description
// with a saved application
func (s *Server) handleSessionLoad(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	svc, err := s.applicationService()
	if err != nil {
		s.fail(w, err)
		return
	}
	id, err := parseUUID(r, "application_id")
	if err != nil {
		s.fail(w, err)
		return
	}

	app, err := svc.Load(r.Context(), id, sess.Store)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"application": app,
		"session":     sessionResponse(sess),
	})
}
