package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/schemas"
)

const promptFile = "suggestions.json"

// LLMService implements Service directly on a language model
type LLMService struct {
	client      llm.Client
	suggestTier llm.ModelTier
	extractTier llm.ModelTier
}

// NewLLMService creates a service over client
func NewLLMService(client llm.Client) *LLMService {
	return &LLMService{
		client:      client,
		suggestTier: llm.TierStandard,
		extractTier: llm.TierLite,
	}
}

// Suggest asks the model for suggestions
func (s *LLMService) Suggest(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	prompt, err := BuildSuggestPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, s.suggestTier)
	if err != nil {
		return nil, &NetworkError{Message: "model call failed", Cause: err}
	}
	return decodeResponse([]byte(raw))
}

// ExtractJobInfo asks the model for the skills and company named in a job description
func (s *LLMService) ExtractJobInfo(ctx context.Context, jobDescription string) (*JobInfo, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return &JobInfo{Skills: []string{}}, nil
	}
	prompt := prompts.Format(prompts.MustGet(promptFile, "extract-job-info"), map[string]string{
		"JobDescription": jobDescription,
	})

	raw, err := s.client.GenerateJSON(ctx, prompt, s.extractTier)
	if err != nil {
		return nil, &NetworkError{Message: "model call failed", Cause: err}
	}
	return decodeJobInfo([]byte(raw))
}

// BuildSuggestPrompt assembles the instruction, resume context and conversation
func BuildSuggestPrompt(req Request) (string, error) {
	resumeJSON, err := json.Marshal(req.Resume)
	if err != nil {
		return "", fmt.Errorf("failed to encode resume: %w", err)
	}
	system, err := prompts.Get(promptFile, "suggest-system")
	if err != nil {
		return "", err
	}
	contextTmpl, err := prompts.Get(promptFile, "suggest-context")
	if err != nil {
		return "", err
	}

	jd := strings.TrimSpace(req.JobDescription)
	if jd == "" {
		jd = prompts.MustGet(promptFile, "suggest-no-job-description")
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(prompts.Format(contextTmpl, map[string]string{
		"Resume":         string(resumeJSON),
		"JobDescription": jd,
	}))

	if msgs := ForwardedMessages(req.Messages); len(msgs) > 0 {
		var conv strings.Builder
		for _, m := range msgs {
			conv.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
		}
		sb.WriteString("\n\n")
		sb.WriteString(prompts.Format(prompts.MustGet(promptFile, "suggest-conversation"), map[string]string{
			"Conversation": strings.TrimRight(conv.String(), "\n"),
		}))
	}
	return sb.String(), nil
}

func decodeResponse(raw []byte) (*Response, error) {
	if err := schemas.ValidateSuggestions(raw); err != nil {
		return nil, &NetworkError{Message: "malformed suggestion response", Cause: err}
	}
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &NetworkError{Message: "failed to decode suggestion response", Cause: err}
	}
	resp.Suggestions = Normalize(resp.Suggestions)
	return &resp, nil
}

func decodeJobInfo(raw []byte) (*JobInfo, error) {
	if err := schemas.ValidateJobInfo(raw); err != nil {
		return nil, &NetworkError{Message: "malformed extraction response", Cause: err}
	}
	var info JobInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, &NetworkError{Message: "failed to decode extraction response", Cause: err}
	}
	return normalizeJobInfo(&info), nil
}
