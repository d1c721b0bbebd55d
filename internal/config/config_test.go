package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "LOG_LEVEL", "COMPLETION_PROVIDER", "GROQ_API_KEY", "COMPLETION_TIMEOUT",
		"REPLY_DEADLINE", "COMPLETION_WORKERS", "CORS_ALLOWED_ORIGINS", "EXPOSE_INTELLIGENCE", "REPORT_URL",
	} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8000" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.CompletionProvider != ProviderOpenAI {
		t.Fatalf("expected openai provider by default, got %s", cfg.CompletionProvider)
	}
	if cfg.CompletionTimeout != 4*time.Second || cfg.ReplyDeadline != 4*time.Second {
		t.Fatalf("unexpected default timeouts: completion=%s reply=%s", cfg.CompletionTimeout, cfg.ReplyDeadline)
	}
	if cfg.CompletionWorkers != 10 {
		t.Fatalf("expected 10 completion workers, got %d", cfg.CompletionWorkers)
	}
	if cfg.CompletionMaxTokens != 60 {
		t.Fatalf("expected 60 max tokens, got %d", cfg.CompletionMaxTokens)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS by default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ExposeIntelligence {
		t.Fatalf("expected intelligence echo disabled by default")
	}
	if cfg.CompletionEnabled() {
		t.Fatalf("expected completion disabled without a credential")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("COMPLETION_PROVIDER", " Gemini ")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("REPLY_DEADLINE", "1500ms")
	t.Setenv("COMPLETION_WORKERS", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("EXPOSE_INTELLIGENCE", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.CompletionProvider != ProviderGemini {
		t.Fatalf("expected gemini provider, got %q", cfg.CompletionProvider)
	}
	if !cfg.CompletionEnabled() {
		t.Fatalf("expected gemini completion enabled with api key")
	}
	if cfg.ReplyDeadline != 1500*time.Millisecond {
		t.Fatalf("expected reply deadline override, got %s", cfg.ReplyDeadline)
	}
	if cfg.CompletionWorkers != 3 {
		t.Fatalf("expected worker override, got %d", cfg.CompletionWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.ExposeIntelligence {
		t.Fatalf("expected intelligence echo enabled")
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("COMPLETION_WORKERS", "many")
	t.Setenv("REPLY_DEADLINE", "soon")
	t.Setenv("EXPOSE_INTELLIGENCE", "perhaps")
	cfg := Load()
	if cfg.CompletionWorkers != 10 {
		t.Fatalf("expected default workers on invalid input, got %d", cfg.CompletionWorkers)
	}
	if cfg.ReplyDeadline != 4*time.Second {
		t.Fatalf("expected default deadline on invalid input, got %s", cfg.ReplyDeadline)
	}
	if cfg.ExposeIntelligence {
		t.Fatalf("expected default bool on invalid input")
	}
}

func TestCompletionEnabledPerProvider(t *testing.T) {
	cfg := &Config{CompletionProvider: ProviderBedrock}
	if cfg.CompletionEnabled() {
		t.Fatalf("bedrock without model id should be disabled")
	}
	cfg.BedrockModelID = "meta.llama3-70b-instruct-v1:0"
	if !cfg.CompletionEnabled() {
		t.Fatalf("bedrock with model id should be enabled")
	}
	cfg = &Config{CompletionProvider: ProviderOpenAI, CompletionAPIKey: "gsk_test"}
	if !cfg.CompletionEnabled() {
		t.Fatalf("openai with key should be enabled")
	}
}

func TestLoadSecretsAndModels(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("OPERATOR_JWT_SECRET", "ops")
	t.Setenv("INBOUND_API_KEY", "inbound")
	cfg := Load()
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("expected default gemini model, got %s", cfg.GeminiModel)
	}
	if cfg.OperatorJWTSecret != "ops" || cfg.InboundAPIKey != "inbound" {
		t.Fatalf("expected secrets to load, got %q/%q", cfg.OperatorJWTSecret, cfg.InboundAPIKey)
	}
}
