package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultSendTimeout = 5 * time.Second

// Sink delivers one report. Implementations must honour ctx cancellation.
type Sink interface {
	Send(ctx context.Context, payload Payload) error
}

// HTTPSinkConfig describes how to reach the case-management endpoint.
type HTTPSinkConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// HTTPSink POSTs reports as JSON.
type HTTPSink struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewHTTPSink validates the configuration and returns a ready-to-use sink.
func NewHTTPSink(cfg HTTPSinkConfig) (*HTTPSink, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("report: endpoint URL required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &HTTPSink{
		url:    strings.TrimSpace(cfg.URL),
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPSink) Send(ctx context.Context, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("report: failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("report: request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(s.apiKey) != "" {
		req.Header.Set("x-api-key", s.apiKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("report: request failed: %w", err)
	}
	defer resp.Body.Close()
	// Body is ignored; drain a little so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// StatusError reports a non-2xx response from the endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("report: endpoint returned status %d", e.StatusCode)
}
