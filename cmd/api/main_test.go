package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSetupMetricsExposesDecoyMetrics(t *testing.T) {
	handler, decoyMetrics := setupMetrics()
	if handler == nil || decoyMetrics == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	decoyMetrics.ObserveReply("fallback:timeout", 4.0)
	decoyMetrics.ObserveReport("sent")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, name := range []string{"honeypot_reply_total", "honeypot_report_total", "go_goroutines"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s to be exported", name)
		}
	}
}
