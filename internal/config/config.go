package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Completion providers understood by the bootstrap code.
const (
	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Remote completion
	CompletionProvider  string
	CompletionAPIKey    string
	CompletionBaseURL   string
	CompletionModel     string
	CompletionMaxTokens int
	CompletionTimeout   time.Duration
	CompletionWorkers   int
	CompletionQueueSize int
	GeminiAPIKey        string
	GeminiModel         string
	BedrockModelID      string

	// Reply orchestration
	ReplyDeadline time.Duration

	// Case reporting
	ReportURL      string
	ReportAPIKey   string
	ReportTimeout  time.Duration
	ReportQueueURL string

	// AWS (Bedrock completions, SQS reports)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Inbound HTTP surface
	InboundAPIKey      string
	OperatorJWTSecret  string
	CORSAllowedOrigins []string
	ExposeIntelligence bool
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8000"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		CompletionProvider:  strings.ToLower(strings.TrimSpace(getEnv("COMPLETION_PROVIDER", ProviderOpenAI))),
		CompletionAPIKey:    getEnv("GROQ_API_KEY", ""),
		CompletionBaseURL:   getEnv("COMPLETION_BASE_URL", "https://api.groq.com/openai/v1"),
		CompletionModel:     getEnv("COMPLETION_MODEL", "llama-3.3-70b-versatile"),
		CompletionMaxTokens: getEnvAsInt("COMPLETION_MAX_TOKENS", 60),
		CompletionTimeout:   getEnvAsDuration("COMPLETION_TIMEOUT", 4*time.Second),
		CompletionWorkers:   getEnvAsInt("COMPLETION_WORKERS", 10),
		CompletionQueueSize: getEnvAsInt("COMPLETION_QUEUE_SIZE", 64),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		BedrockModelID:      getEnv("BEDROCK_MODEL_ID", ""),

		ReplyDeadline: getEnvAsDuration("REPLY_DEADLINE", 4*time.Second),

		ReportURL:      getEnv("REPORT_URL", ""),
		ReportAPIKey:   getEnv("REPORT_API_KEY", ""),
		ReportTimeout:  getEnvAsDuration("REPORT_TIMEOUT", 5*time.Second),
		ReportQueueURL: getEnv("REPORT_QUEUE_URL", ""),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		InboundAPIKey:      getEnv("INBOUND_API_KEY", ""),
		OperatorJWTSecret:  getEnv("OPERATOR_JWT_SECRET", ""),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ExposeIntelligence: getEnvAsBool("EXPOSE_INTELLIGENCE", false),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// CompletionEnabled reports whether the selected provider has the credentials it needs.
// A false result is not an error: the service runs with fallback replies only.
func (c *Config) CompletionEnabled() bool {
	switch c.CompletionProvider {
	case ProviderBedrock:
		return strings.TrimSpace(c.BedrockModelID) != ""
	case ProviderGemini:
		return strings.TrimSpace(c.GeminiAPIKey) != ""
	default:
		return strings.TrimSpace(c.CompletionAPIKey) != ""
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
