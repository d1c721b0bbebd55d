package conversation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/wolfman30/scam-honeypot/internal/intel"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

const (
	statusSuccess   = "success"
	statusMessage   = "Ramesh Online"
	maxTurnBodySize = 1 << 20
)

// Responder decides the reply for one counterpart message.
type Responder interface {
	Respond(ctx context.Context, history []HistoryMessage, currentText string) ReplyDecision
}

// ReportDispatcher hands a conversation to the background reporting pipeline.
// Implementations must return without waiting for delivery.
type ReportDispatcher interface {
	MaybeReport(sessionID, fullText string, totalMessages int)
}

// TurnResponse is the body returned for every inbound message. The
// intelligence fields are only populated in echo mode.
type TurnResponse struct {
	Status                 string              `json:"status"`
	Reply                  string              `json:"reply"`
	SessionID              string              `json:"sessionId,omitempty"`
	ScamDetected           *bool               `json:"scamDetected,omitempty"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged,omitempty"`
	ExtractedIntelligence  *intel.Intelligence `json:"extractedIntelligence,omitempty"`
	AgentNotes             string              `json:"agentNotes,omitempty"`
}

// StatusResponse is the liveness body.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler wires HTTP requests to the reply orchestrator and reporting pipeline.
type Handler struct {
	responder   Responder
	reporter    ReportDispatcher
	logger      *logging.Logger
	echoIntel   bool
	stallPicker func() string
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithIntelligenceEcho includes the extraction result in every reply body.
func WithIntelligenceEcho(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.echoIntel = enabled
	}
}

// NewHandler creates a conversation handler. reporter may be nil.
func NewHandler(responder Responder, reporter ReportDispatcher, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if responder == nil {
		panic("conversation: responder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		responder:   responder,
		reporter:    reporter,
		logger:      logger,
		stallPicker: randomStallReply,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Process runs one turn without any transport concerns.
func (h *Handler) Process(ctx context.Context, turn Turn) TurnResponse {
	start := time.Now()
	decision := h.responder.Respond(ctx, turn.History, turn.Text)

	fullText := turn.FullText()
	total := turn.TotalMessages()
	if h.reporter != nil {
		h.reporter.MaybeReport(turn.SessionID, fullText, total)
	}

	h.logger.Info("turn processed",
		"session_id", turn.SessionID,
		"provenance", decision.Provenance,
		"total_messages", total,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	resp := TurnResponse{Status: statusSuccess, Reply: decision.Text}
	if h.echoIntel {
		res := intel.Extract(fullText)
		detected := res.Critical
		extracted := res.Intelligence()
		resp.SessionID = turn.SessionID
		resp.ScamDetected = &detected
		resp.TotalMessagesExchanged = total
		resp.ExtractedIntelligence = &extracted
		resp.AgentNotes = res.Notes()
	}
	return resp
}

// Turn handles POST /api/scam-honey-pot. It always answers 200 with a reply.
func (h *Handler) Turn(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("turn handler panicked", "panic", rec)
			h.writeJSON(w, http.StatusOK, TurnResponse{Status: statusSuccess, Reply: lastResortReply})
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTurnBodySize))
	if err != nil {
		h.logger.Warn("failed to read turn body", "error", err)
	}
	turn := DecodeTurn(body)

	h.writeJSON(w, http.StatusOK, h.Process(r.Context(), turn))
}

// Throttled answers an over-limit request with a stall reply and no model call.
func (h *Handler) Throttled(w http.ResponseWriter, r *http.Request) {
	text := h.stallPicker()
	if text == "" {
		text = lastResortReply
	}
	h.logger.Warn("turn throttled", "remote_ip", r.RemoteAddr)
	h.writeJSON(w, http.StatusOK, TurnResponse{Status: statusSuccess, Reply: text})
}

// Status handles GET /health and GET /.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, StatusResponse{Status: statusSuccess, Message: statusMessage})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
