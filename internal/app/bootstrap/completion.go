package bootstrap

import (
	"context"
	"fmt"

	appconfig "github.com/wolfman30/scam-honeypot/internal/config"
	"github.com/wolfman30/scam-honeypot/internal/conversation"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

// BuildCompleter constructs the configured completion provider. Missing
// credentials are not an error: the returned completer is nil and the service
// runs on stall replies only. cleanup releases provider resources.
func BuildCompleter(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (conversation.Completer, func(), error) {
	noop := func() {}
	if !cfg.CompletionEnabled() {
		logger.Warn("completion provider not configured, replies will use stall phrases only",
			"provider", cfg.CompletionProvider,
		)
		return nil, noop, nil
	}

	completionCfg := conversation.CompletionConfig{
		Model:     cfg.CompletionModel,
		MaxTokens: int32(cfg.CompletionMaxTokens),
		Timeout:   cfg.CompletionTimeout,
	}

	var (
		llm     conversation.LLMClient
		cleanup = noop
	)
	switch cfg.CompletionProvider {
	case appconfig.ProviderBedrock:
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		llm = conversation.NewBedrockLLMClient(newBedrockClient(awsCfg, cfg.AWSEndpointOverride))
		completionCfg.Model = cfg.BedrockModelID
	case appconfig.ProviderGemini:
		gemini, err := conversation.NewGeminiLLMClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		llm = gemini
		completionCfg.Model = cfg.GeminiModel
		cleanup = func() {
			if err := gemini.Close(); err != nil {
				logger.Warn("failed to close gemini client", "error", err)
			}
		}
	case appconfig.ProviderOpenAI:
		llm = conversation.NewOpenAILLMClient(cfg.CompletionAPIKey, cfg.CompletionBaseURL, cfg.CompletionTimeout)
	default:
		return nil, noop, fmt.Errorf("bootstrap: unknown completion provider %q", cfg.CompletionProvider)
	}

	logger.Info("completion provider configured",
		"provider", cfg.CompletionProvider,
		"model", completionCfg.Model,
		"timeout", cfg.CompletionTimeout.String(),
	)
	return conversation.NewCompletionClient(llm, completionCfg, logger), cleanup, nil
}
