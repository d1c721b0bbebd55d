package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

// APIKeyHeader is the header inbound callers authenticate with.
const APIKeyHeader = "x-api-key"

// WarnOnAPIKeyMismatch logs requests whose x-api-key does not match expected
// but always lets them through. An empty expected key disables the check.
func WarnOnAPIKeyMismatch(expected string, logger *logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				logger.Warn("inbound api key mismatch",
					"path", r.URL.Path,
					"remote_ip", r.RemoteAddr,
					"key_present", got != "",
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}
