package conversation

import "context"

// Roles understood by every provider client.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one provider-neutral chat entry.
type ChatMessage struct {
	Role    string
	Content string
}

// LLMRequest is a single-shot completion: persona blocks, the framed
// counterpart message and an output cap.
type LLMRequest struct {
	Model     string
	System    []string
	Messages  []ChatMessage
	MaxTokens int32
}

// LLMResponse carries the reply text plus the diagnostics the completion
// client logs.
type LLMResponse struct {
	Text         string
	StopReason   string
	InputTokens  int32
	OutputTokens int32
}

// LLMClient is a provider-specific chat completion backend.
type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
