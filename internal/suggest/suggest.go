package suggest

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/types"
)

// Request is what the suggestion service receives
type Request struct {
	Resume         *types.ResumeDocument `json:"resume"`
	JobDescription string                `json:"jobDescription"`
	Messages       []types.ChatMessage   `json:"messages"`
}

// Validate checks that the request carries a resume
func (r *Request) Validate() error {
	if r.Resume == nil {
		return &RequestError{Message: "Missing resume data"}
	}
	return nil
}

// Response is the service reply
type Response struct {
	Suggestions []types.Suggestion `json:"suggestions"`
}

// JobInfo is what the extraction call pulls out of a job description
type JobInfo struct {
	Skills      []string `json:"skills"`
	CompanyName string   `json:"companyName"`
}

// Service produces suggestions and job description metadata
type Service interface {
	Suggest(ctx context.Context, req Request) (*Response, error)
	ExtractJobInfo(ctx context.Context, jobDescription string) (*JobInfo, error)
}

// ForwardedMessages drops the welcome greeting and empty messages from history
func ForwardedMessages(history []types.ChatMessage) []types.ChatMessage {
	out := make([]types.ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.ID == types.WelcomeMessageID || msg.Role == "" || strings.TrimSpace(msg.Content) == "" {
			continue
		}
		out = append(out, types.ChatMessage{ID: msg.ID, Role: msg.Role, Content: msg.Content})
	}
	return out
}

// Normalize prepares freshly received suggestions for the chat history. Every
// suggestion starts pending, and suggestions without an id get one.
func Normalize(suggestions []types.Suggestion) []types.Suggestion {
	out := make([]types.Suggestion, 0, len(suggestions))
	seen := make(map[string]bool, len(suggestions))
	for _, s := range suggestions {
		s.Status = types.StatusPending
		if s.ID == "" || seen[s.ID] {
			s.ID = uuid.NewString()
		}
		seen[s.ID] = true
		s.Suggested = s.Suggested.Clone()
		out = append(out, s)
	}
	return out
}

// normalizeJobInfo trims, drops blanks, and removes case-insensitive duplicates
func normalizeJobInfo(info *JobInfo) *JobInfo {
	out := &JobInfo{CompanyName: strings.TrimSpace(info.CompanyName), Skills: []string{}}
	seen := make(map[string]bool, len(info.Skills))
	for _, s := range info.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Skills = append(out.Skills, s)
	}
	return out
}
