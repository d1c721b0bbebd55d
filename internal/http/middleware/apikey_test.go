package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

func TestWarnOnAPIKeyMismatch(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		sent     string
		wantWarn bool
	}{
		{name: "matching key", expected: "k1", sent: "k1"},
		{name: "wrong key", expected: "k1", sent: "nope", wantWarn: true},
		{name: "missing key", expected: "k1", wantWarn: true},
		{name: "check disabled", expected: "", sent: "whatever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewWithWriter("info", &buf)
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/api/scam-honey-pot", nil)
			if tt.sent != "" {
				req.Header.Set(APIKeyHeader, tt.sent)
			}
			rec := httptest.NewRecorder()

			WarnOnAPIKeyMismatch(tt.expected, logger)(next).ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte("inbound api key mismatch")))
		})
	}
}
