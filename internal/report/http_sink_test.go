package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/scam-honeypot/internal/intel"
)

func TestNewHTTPSink_RequiresURL(t *testing.T) {
	_, err := NewHTTPSink(HTTPSinkConfig{URL: "  "})
	require.Error(t, err)
}

func TestHTTPSink_SendPostsPayload(t *testing.T) {
	var (
		gotKey  string
		gotType string
		gotBody map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotKey = r.Header.Get("x-api-key")
		gotType = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(HTTPSinkConfig{URL: srv.URL, APIKey: "secret"})
	require.NoError(t, err)

	payload := NewPayload("abc", intel.Extract("call 9876543210 urgent"), 4)
	require.NoError(t, sink.Send(context.Background(), payload))

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "abc", gotBody["sessionId"])
	assert.Equal(t, true, gotBody["scamDetected"])
	assert.Equal(t, float64(4), gotBody["totalMessagesExchanged"])
	extracted, ok := gotBody["extractedIntelligence"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"9876543210"}, extracted["phoneNumbers"])
	assert.Equal(t, []any{}, extracted["bankAccounts"])
}

func TestHTTPSink_OmitsKeyWhenUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		assert.False(t, present)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(HTTPSinkConfig{URL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, sink.Send(context.Background(), Payload{SessionID: "x"}))
}

func TestHTTPSink_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink, err := NewHTTPSink(HTTPSinkConfig{URL: srv.URL})
	require.NoError(t, err)

	err = sink.Send(context.Background(), Payload{SessionID: "x"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestHTTPSink_HonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	sink, err := NewHTTPSink(HTTPSinkConfig{URL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err = sink.Send(ctx, Payload{SessionID: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
