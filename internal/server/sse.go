package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSE event names sent by /api/analyze/stream.
const (
	eventProgress = "progress"
	eventResult   = "result"
	eventError    = "error"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the event-stream headers. Call it only after request
// validation so earlier failures can still use a plain JSON error.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress reports a finished analysis stage.
func (s *SSEWriter) WriteProgress(stage string) {
	s.WriteEvent(eventProgress, map[string]string{"stage": stage}) //nolint:errcheck
}

// WriteError sends an error event with the status the JSON endpoint would use.
func (s *SSEWriter) WriteError(status int, message string) {
	s.WriteEvent(eventError, map[string]any{ //nolint:errcheck
		"status": status,
		"error":  message,
	})
}
