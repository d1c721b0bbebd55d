package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	resp LLMResponse
	err  error
	wait bool
	req  LLMRequest
}

func (s *stubLLM) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	s.req = req
	if s.wait {
		<-ctx.Done()
		return LLMResponse{}, ctx.Err()
	}
	return s.resp, s.err
}

func TestCompletionClient_BuildsSingleShotRequest(t *testing.T) {
	llm := &stubLLM{resp: LLMResponse{Text: " kya hua beta? "}}
	client := NewCompletionClient(llm, CompletionConfig{Model: "llama-3.3-70b-versatile"}, nil)

	text, ok := client.Complete(context.Background(), "persona", "send otp")

	require.True(t, ok)
	assert.Equal(t, "kya hua beta?", text)
	assert.Equal(t, "llama-3.3-70b-versatile", llm.req.Model)
	assert.Equal(t, []string{"persona"}, llm.req.System)
	assert.Equal(t, []ChatMessage{{Role: ChatRoleUser, Content: "Reply to: send otp"}}, llm.req.Messages)
	assert.Equal(t, int32(defaultCompletionMaxTokens), llm.req.MaxTokens)
}

func TestCompletionClient_FailuresCollapseToNoResult(t *testing.T) {
	tests := []struct {
		name string
		llm  *stubLLM
	}{
		{name: "transport error", llm: &stubLLM{err: errors.New("connection refused")}},
		{name: "blank text", llm: &stubLLM{resp: LLMResponse{Text: "  \n"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewCompletionClient(tt.llm, CompletionConfig{Model: "m"}, nil)
			text, ok := client.Complete(context.Background(), "p", "hi")
			assert.False(t, ok)
			assert.Empty(t, text)
		})
	}
}

func TestCompletionClient_AppliesOwnTimeout(t *testing.T) {
	client := NewCompletionClient(&stubLLM{wait: true}, CompletionConfig{Model: "m", Timeout: 30 * time.Millisecond}, nil)

	start := time.Now()
	_, ok := client.Complete(context.Background(), "p", "hi")

	assert.False(t, ok)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNewCompletionClient_PanicsWithoutLLM(t *testing.T) {
	assert.Panics(t, func() { NewCompletionClient(nil, CompletionConfig{}, nil) })
}
