package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/scam-honeypot/internal/conversation"
	httpmiddleware "github.com/wolfman30/scam-honeypot/internal/http/middleware"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

// TurnPath is the primary inbound endpoint.
const TurnPath = "/api/scam-honey-pot"

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ConversationHandler *conversation.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// InboundAPIKey is compared against x-api-key; mismatches are only logged.
	InboundAPIKey string
	// OperatorJWTSecret, when set, guards /metrics with an operator token.
	OperatorJWTSecret string

	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	if cfg == nil || cfg.ConversationHandler == nil {
		panic("router: conversation handler is required")
	}
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}

	h := cfg.ConversationHandler
	r.Get("/health", h.Status)
	r.Get("/", h.Status)

	r.Group(func(turns chi.Router) {
		turns.Use(httpmiddleware.WarnOnAPIKeyMismatch(cfg.InboundAPIKey, cfg.Logger))
		turns.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, http.HandlerFunc(h.Throttled)))
		turns.Post(TurnPath, h.Turn)
		turns.Post("/", h.Turn)
	})

	if cfg.MetricsHandler != nil {
		r.Group(func(ops chi.Router) {
			if cfg.OperatorJWTSecret != "" {
				ops.Use(httpmiddleware.OperatorJWT(cfg.OperatorJWTSecret, cfg.Logger))
			}
			ops.Handle("/metrics", cfg.MetricsHandler)
		})
	}

	return r
}
