package conversation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAILLMClient talks to any OpenAI-compatible chat completions endpoint (Groq by default).
type OpenAILLMClient struct {
	api chatClient
}

// NewOpenAILLMClient builds a client for baseURL (e.g. https://api.groq.com/openai/v1).
// timeout bounds each HTTP round trip independently of any caller deadline.
func NewOpenAILLMClient(apiKey, baseURL string, timeout time.Duration) *OpenAILLMClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	return &OpenAILLMClient{api: openai.NewClientWithConfig(cfg)}
}

func newOpenAILLMClientWithAPI(api chatClient) *OpenAILLMClient {
	if api == nil {
		panic("conversation: openai chat client cannot be nil")
	}
	return &OpenAILLMClient{api: api}
}

func (c *OpenAILLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return LLMResponse{}, errors.New("conversation: openai model is required")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.System)+len(req.Messages))
	for _, block := range req.System {
		if strings.TrimSpace(block) == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: block})
	}
	for _, msg := range req.Messages {
		switch msg.Role {
		case ChatRoleSystem, ChatRoleUser, ChatRoleAssistant:
		default:
			return LLMResponse{}, fmt.Errorf("conversation: unsupported role %q", msg.Role)
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: msg.Role, Content: msg.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens: int(req.MaxTokens),
	})
	if err != nil {
		return LLMResponse{}, fmt.Errorf("conversation: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return LLMResponse{}, errors.New("conversation: openai returned no choices")
	}

	choice := resp.Choices[0]
	return LLMResponse{
		Text:         strings.TrimSpace(choice.Message.Content),
		StopReason:   string(choice.FinishReason),
		InputTokens:  int32(resp.Usage.PromptTokens),
		OutputTokens: int32(resp.Usage.CompletionTokens),
	}, nil
}
