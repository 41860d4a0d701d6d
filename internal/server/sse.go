package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// sseRetryMillis is the reconnect delay suggested to EventSource clients
const sseRetryMillis = 3000

var errStreamingUnsupported = errors.New("streaming not supported")

// SSEWriter writes a session's event stream. Events carry increasing ids so a
// client can tell a reconnect apart from a missed event.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	seq     uint64
}

// NewSSEWriter sets the stream headers and sends the retry hint
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprintf(w, "retry: %d\n\n", sseRetryMillis); err != nil {
		return nil, err
	}
	flusher.Flush()
	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Send writes ev as one event. Data is JSON encoded on a single line.
func (s *SSEWriter) Send(ev Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", ev.Name, err)
	}

	s.seq++
	var sb strings.Builder
	fmt.Fprintf(&sb, "id: %d\n", s.seq)
	fmt.Fprintf(&sb, "event: %s\n", ev.Name)
	fmt.Fprintf(&sb, "data: %s\n\n", data)
	if _, err := s.w.Write([]byte(sb.String())); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// KeepAlive sends a comment line so idle proxies keep the connection open
func (s *SSEWriter) KeepAlive() error {
	if _, err := fmt.Fprint(s.w, ": keep-alive\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
