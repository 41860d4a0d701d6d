package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultHTTPTimeout bounds one call to a remote suggestion backend
const DefaultHTTPTimeout = 60 * time.Second

// maxResponseBytes caps a backend reply
const maxResponseBytes = 4 << 20

// HTTPService implements Service against a remote backend exposing
// POST /api/suggestions and POST /api/extract.
type HTTPService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPService creates a client for the backend at baseURL
func NewHTTPService(baseURL string, client *http.Client) *HTTPService {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPService{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Suggest posts the request to the backend
func (s *HTTPService) Suggest(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Messages = ForwardedMessages(req.Messages)
	raw, err := s.post(ctx, "/api/suggestions", req)
	if err != nil {
		return nil, err
	}
	return decodeResponse(raw)
}

// ExtractJobInfo posts the job description to the backend
func (s *HTTPService) ExtractJobInfo(ctx context.Context, jobDescription string) (*JobInfo, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return &JobInfo{Skills: []string{}}, nil
	}
	raw, err := s.post(ctx, "/api/extract", map[string]string{"jobDescription": jobDescription})
	if err != nil {
		return nil, err
	}
	return decodeJobInfo(raw)
}

func (s *HTTPService) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Message: "failed to read response body", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		msg := fmt.Sprintf("HTTP status %d", resp.StatusCode)
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			msg += ": " + apiErr.Error
		}
		return nil, &NetworkError{Message: msg}
	}
	return raw, nil
}
