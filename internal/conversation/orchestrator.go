package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/scam-honeypot/internal/observability/metrics"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

const defaultReplyDeadline = 4 * time.Second

var orchestratorTracer = otel.Tracer("honeypot.internal.conversation.orchestrator")

// ReplyProvenance records where a reply came from. Diagnostics only.
type ReplyProvenance string

const (
	ProvenanceModel      ReplyProvenance = "model-generated"
	ProvenanceModelEmpty ReplyProvenance = "fallback:model-empty"
	ProvenanceTimeout    ReplyProvenance = "fallback:timeout"
	ProvenanceInjection  ReplyProvenance = "fallback:injection-detected"
)

// ReplyDecision is the outcome of one orchestration attempt.
type ReplyDecision struct {
	Text       string
	Provenance ReplyProvenance
}

// IsFallback reports whether the reply came from the stall pool.
func (d ReplyDecision) IsFallback() bool {
	return d.Provenance != ProvenanceModel
}

// Orchestrator answers every turn within a fixed deadline, racing the remote
// completion against a stall reply.
type Orchestrator struct {
	completer Completer
	pool      *WorkerPool
	deadline  time.Duration
	persona   string
	fallback  func() string
	metrics   *metrics.DecoyMetrics
	logger    *logging.Logger
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithReplyDeadline sets the outer deadline for producing a reply.
func WithReplyDeadline(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		if d > 0 {
			o.deadline = d
		}
	}
}

// WithPersona overrides the system instruction sent to the model.
func WithPersona(persona string) OrchestratorOption {
	return func(o *Orchestrator) {
		if strings.TrimSpace(persona) != "" {
			o.persona = persona
		}
	}
}

// WithFallbackPicker replaces the random stall reply selection.
func WithFallbackPicker(pick func() string) OrchestratorOption {
	return func(o *Orchestrator) {
		if pick != nil {
			o.fallback = pick
		}
	}
}

// WithOrchestratorMetrics wires reply counters.
func WithOrchestratorMetrics(m *metrics.DecoyMetrics) OrchestratorOption {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(logger *logging.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator builds an orchestrator. A nil completer puts it in
// fallback-only mode: no remote calls are ever attempted.
func NewOrchestrator(completer Completer, pool *WorkerPool, opts ...OrchestratorOption) *Orchestrator {
	if pool == nil {
		panic("conversation: worker pool cannot be nil")
	}
	o := &Orchestrator{
		completer: completer,
		pool:      pool,
		deadline:  defaultReplyDeadline,
		persona:   decoyPersona,
		fallback:  randomStallReply,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type completionResult struct {
	text string
	ok   bool
}

// Respond produces a reply to currentText. It never fails and never waits
// longer than the configured deadline; history is accepted for context but
// only the current message is sent to the model.
func (o *Orchestrator) Respond(ctx context.Context, history []HistoryMessage, currentText string) ReplyDecision {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	ctx, span := orchestratorTracer.Start(ctx, "conversation.respond")
	defer span.End()

	decision := o.respond(ctx, Sanitize(currentText))

	span.SetAttributes(
		attribute.String("honeypot.provenance", string(decision.Provenance)),
		attribute.Int("honeypot.history_len", len(history)),
	)
	o.metrics.ObserveReply(string(decision.Provenance), time.Since(start).Seconds())
	o.logger.Info("reply decided",
		"provenance", decision.Provenance,
		"history_len", len(history),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return decision
}

func (o *Orchestrator) respond(ctx context.Context, clean string) ReplyDecision {
	if IsInjectionAttempt(clean) {
		return o.stall(ProvenanceInjection)
	}
	if o.completer == nil {
		return o.stall(ProvenanceModelEmpty)
	}

	waitCtx, cancel := context.WithTimeout(ctx, o.deadline)
	defer cancel()

	// Buffered so a worker finishing after the deadline never blocks.
	results := make(chan completionResult, 1)
	// The call outlives this turn if it must; its own timeout bounds it.
	callCtx := context.WithoutCancel(ctx)
	job := func() {
		var res completionResult
		// Runs on panic too, so a crashing completer reads as an empty reply.
		defer func() { results <- res }()
		res.text, res.ok = o.completer.Complete(callCtx, o.persona, clean)
	}

	if err := o.pool.Submit(waitCtx, job); err != nil {
		o.metrics.ObservePoolRejected()
		if errors.Is(err, ErrPoolClosed) {
			return o.stall(ProvenanceModelEmpty)
		}
		return o.stall(ProvenanceTimeout)
	}

	select {
	case res := <-results:
		text := strings.TrimSpace(res.text)
		if !res.ok || text == "" {
			return o.stall(ProvenanceModelEmpty)
		}
		if reason := ScanReplyForPersonaBreak(text); reason != "" {
			o.logger.Warn("model reply discarded", "reason", reason)
			return o.stall(ProvenanceModelEmpty)
		}
		return ReplyDecision{Text: text, Provenance: ProvenanceModel}
	case <-waitCtx.Done():
		return o.stall(ProvenanceTimeout)
	}
}

func (o *Orchestrator) stall(provenance ReplyProvenance) ReplyDecision {
	text := o.fallback()
	if strings.TrimSpace(text) == "" {
		text = lastResortReply
	}
	return ReplyDecision{Text: text, Provenance: provenance}
}
