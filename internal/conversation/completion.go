package conversation

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

const (
	defaultCompletionTimeout   = 4 * time.Second
	defaultCompletionMaxTokens = 60
)

var completionTracer = otel.Tracer("honeypot.internal.conversation.completion")

// Completer produces a reply for one counterpart utterance. ok is false when
// no usable text came back; the call never returns an error.
type Completer interface {
	Complete(ctx context.Context, persona, userText string) (text string, ok bool)
}

// CompletionConfig tunes a CompletionClient.
type CompletionConfig struct {
	Model     string
	MaxTokens int32
	Timeout   time.Duration
}

// CompletionClient is the single-shot remote completion boundary: one request,
// its own timeout, no retries, every failure collapsed to "no result".
type CompletionClient struct {
	llm       LLMClient
	model     string
	maxTokens int32
	timeout   time.Duration
	logger    *logging.Logger
}

func NewCompletionClient(llm LLMClient, cfg CompletionConfig, logger *logging.Logger) *CompletionClient {
	if llm == nil {
		panic("conversation: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCompletionTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultCompletionMaxTokens
	}
	return &CompletionClient{
		llm:       llm,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		logger:    logger,
	}
}

func (c *CompletionClient) Complete(ctx context.Context, persona, userText string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := completionTracer.Start(ctx, "conversation.completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("honeypot.model", c.model),
		attribute.Int("honeypot.max_tokens", int(c.maxTokens)),
	)

	start := time.Now()
	resp, err := c.llm.Complete(ctx, LLMRequest{
		Model:     c.model,
		System:    []string{persona},
		Messages:  []ChatMessage{{Role: ChatRoleUser, Content: "Reply to: " + userText}},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		span.RecordError(err)
		c.logger.Warn("completion failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return "", false
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		c.logger.Warn("completion returned empty text", "stop_reason", resp.StopReason)
		return "", false
	}
	c.logger.Debug("completion succeeded",
		"duration_ms", time.Since(start).Milliseconds(),
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)
	return text, true
}
