package scamsim

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/scam-honeypot/internal/conversation"
)

type recordingTarget struct {
	requests []Request
	failAt   int
}

func (t *recordingTarget) Send(ctx context.Context, req Request) (string, error) {
	t.requests = append(t.requests, req)
	if t.failAt > 0 && len(t.requests) == t.failAt {
		return "", errors.New("connection reset")
	}
	return "reply " + req.Message.Text[:5], nil
}

func TestRun_AccumulatesHistory(t *testing.T) {
	target := &recordingTarget{}
	var out bytes.Buffer

	results, err := Run(context.Background(), target, "sim-1", DefaultScript, 0, &out)
	require.NoError(t, err)

	require.Len(t, results, len(DefaultScript.Lines))
	require.Len(t, target.requests, len(DefaultScript.Lines))
	for i, req := range target.requests {
		assert.Equal(t, "sim-1", req.SessionID)
		assert.Equal(t, DefaultScript.Lines[i], req.Message.Text)
		assert.Len(t, req.ConversationHistory, 2*i)
	}
	last := target.requests[len(target.requests)-1].ConversationHistory
	assert.Equal(t, Message{Sender: "Scammer", Text: DefaultScript.Lines[0]}, last[0])
	assert.Equal(t, decoySender, last[1].Sender)
	assert.Contains(t, out.String(), "--- Turn 5 ---")
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	target := &recordingTarget{failAt: 2}
	results, err := Run(context.Background(), target, "s", DefaultScript, 0, &bytes.Buffer{})
	require.Error(t, err)
	assert.Len(t, results, 1)
	assert.Len(t, target.requests, 2)
}

func TestHTTPTarget_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		var req Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "s-1", req.SessionID)
		_, _ = w.Write([]byte(`{"status":"success","reply":"haan beta"}`))
	}))
	defer srv.Close()

	reply, err := NewHTTPTarget(srv.URL, "k", 0).Send(context.Background(), Request{SessionID: "s-1", Message: Message{Text: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "haan beta", reply)
}

func TestHTTPTarget_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPTarget(srv.URL, "", 0).Send(context.Background(), Request{})
	assert.ErrorContains(t, err, "502")
}

func TestLocalTarget_UsesHandler(t *testing.T) {
	pool := conversation.NewWorkerPool(1, 1)
	t.Cleanup(pool.Close)
	handler := conversation.NewHandler(conversation.NewOrchestrator(nil, pool), nil, nil)

	reply, err := NewLocalTarget(handler).Send(context.Background(), Request{SessionID: "s", Message: Message{Text: "hello"}})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}

func TestParseScript(t *testing.T) {
	script, err := ParseScript([]byte("name: lottery\nlines:\n  - You won 25 lakh!\n  - ''\n  - Pay 5000 processing fee to claim@okicici\n"))
	require.NoError(t, err)
	assert.Equal(t, "lottery", script.Name)
	assert.Equal(t, []string{"You won 25 lakh!", "Pay 5000 processing fee to claim@okicici"}, script.Lines)

	_, err = ParseScript([]byte("name: empty\nlines: []\n"))
	assert.Error(t, err)

	_, err = ParseScript([]byte("lines: [unterminated"))
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: x\nlines: [a, b]\n"), 0o600))

	script, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, script.Lines)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	cmd := NewRootCommand(nil)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"extract", "call", "9876543210", "urgent"})

	require.NoError(t, cmd.Execute())

	var got struct {
		Critical     bool `json:"critical"`
		Intelligence struct {
			PhoneNumbers []string `json:"phoneNumbers"`
		} `json:"intelligence"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.True(t, got.Critical)
	assert.Equal(t, []string{"9876543210"}, got.Intelligence.PhoneNumbers)
}

func TestRunCommand_LocalWithoutFactory(t *testing.T) {
	cmd := NewRootCommand(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--local", "--pause", "0"})
	assert.Error(t, cmd.Execute())
}

func TestRunCommand_LocalFactory(t *testing.T) {
	target := &recordingTarget{}
	cleaned := false
	cmd := NewRootCommand(func(ctx context.Context) (Target, func(), error) {
		return target, func() { cleaned = true }, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"run", "--local", "--pause", "0", "--session", "fixed"})

	require.NoError(t, cmd.Execute())
	assert.True(t, cleaned)
	assert.Len(t, target.requests, len(DefaultScript.Lines))
	assert.Contains(t, out.String(), "Completed 5 turns")
}

func TestLabelsFor_PlainWhenNotTerminal(t *testing.T) {
	assert.Equal(t, plainLabels, labelsFor(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, plainLabels, labelsFor(f))
}
