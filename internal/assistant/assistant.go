// Package assistant runs the chat loop: it records user messages, asks the suggestion
// service for edits and appends the reply to the session.
package assistant

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/suggest"
	"github.com/jonathan/resume-studio/internal/types"
)

// Reply texts shown to the user
const (
	ReplyWithSuggestions = "I have initialized some suggestions for you based on our conversation."
	ReplyNoSuggestions   = "I acknowledged that. Is there anything specific on the resume you would like to work on?"
	ReplyServiceError    = "Sorry, I encountered an error. Please ensure the backend server is running."
)

// JobDescriptionMinLength is the message length above which a message is taken
// as the job description when none has been captured yet
const JobDescriptionMinLength = 100

// DefaultTimeout bounds one suggestion round trip
const DefaultTimeout = 90 * time.Second

// ErrEmptyMessage is returned for blank input; nothing is recorded
var ErrEmptyMessage = errors.New("message is empty")

// Observer is told the result and duration of every suggestion call
type Observer func(err error, elapsed time.Duration)

// Assistant sends chat messages to a suggestion service
type Assistant struct {
	svc      suggest.Service
	timeout  time.Duration
	observer Observer
	newID    func() string
}

// Option configures an Assistant
type Option func(*Assistant)

// WithTimeout overrides DefaultTimeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithObserver registers a callback for suggestion call results
func WithObserver(fn Observer) Option {
	return func(a *Assistant) { a.observer = fn }
}

// New creates an assistant over svc
func New(svc suggest.Service, opts ...Option) *Assistant {
	a := &Assistant{svc: svc, timeout: DefaultTimeout, newID: uuid.NewString}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Exchange is the outcome of one SendMessage call
type Exchange struct {
	User                   types.ChatMessage `json:"user"`
	Reply                  types.ChatMessage `json:"reply"`
	CapturedJobDescription bool              `json:"capturedJobDescription"`
	Failed                 bool              `json:"failed"`
}

// SendMessage records text as a user message, requests suggestions for the current
// document and appends the assistant reply. A service failure becomes an error
// reply in the conversation rather than a returned error. The store is not locked
// while the service call is in flight; the reply is appended whenever it arrives.
func (a *Assistant) SendMessage(ctx context.Context, s *store.Store, text string) (*Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	user := types.ChatMessage{ID: a.newID(), Role: types.RoleUser, Content: text}
	s.AppendChatMessage(user)

	ex := &Exchange{User: user}
	if utf8.RuneCountInString(text) > JobDescriptionMinLength {
		ex.CapturedJobDescription = s.CaptureJobDescription(text)
	}

	snap := s.Snapshot()
	req := suggest.Request{
		Resume:         &snap.Document,
		JobDescription: snap.JobDescription,
		Messages:       snap.ChatHistory,
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	resp, err := a.svc.Suggest(callCtx, req)
	if a.observer != nil {
		a.observer(err, time.Since(start))
	}

	reply := types.ChatMessage{ID: a.newID(), Role: types.RoleAssistant}
	switch {
	case err != nil:
		log.Printf("[assistant] suggestion request failed: %v", err)
		reply.Content = ReplyServiceError
		ex.Failed = true
	case len(resp.Suggestions) > 0:
		reply.Content = ReplyWithSuggestions
		reply.Suggestions = resp.Suggestions
	default:
		reply.Content = ReplyNoSuggestions
	}

	s.AppendChatMessage(reply)
	ex.Reply = reply
	return ex, nil
}
