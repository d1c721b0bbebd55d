package report

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/scam-honeypot/internal/intel"
	"github.com/wolfman30/scam-honeypot/internal/observability/metrics"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

var pipelineTracer = otel.Tracer("honeypot.internal.report")

// Report outcomes, used as log fields and metric labels.
const (
	OutcomeSkipped = "skipped"
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeNoSink  = "no_sink"
)

// Pipeline extracts intelligence and forwards critical findings off the
// request path.
type Pipeline struct {
	sink    Sink
	timeout time.Duration
	metrics *metrics.DecoyMetrics
	logger  *logging.Logger
	wg      sync.WaitGroup
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithSendTimeout bounds each delivery attempt.
func WithSendTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithPipelineMetrics wires report counters.
func WithPipelineMetrics(m *metrics.DecoyMetrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithPipelineLogger sets the logger.
func WithPipelineLogger(logger *logging.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline. With a nil sink verdicts are still computed
// and logged but nothing is delivered.
func NewPipeline(sink Sink, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		sink:    sink,
		timeout: defaultSendTimeout,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaybeReport dispatches a detached report attempt and returns immediately.
// Its outcome is observable only through logs and metrics.
func (p *Pipeline) MaybeReport(sessionID, fullText string, totalMessages int) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("report dispatch panicked", "session_id", sessionID, "panic", r)
			}
		}()
		p.Report(context.Background(), sessionID, fullText, totalMessages)
	}()
}

// Report runs extraction over fullText and, when the verdict is critical,
// delivers one payload. It returns the outcome label.
func (p *Pipeline) Report(ctx context.Context, sessionID, fullText string, totalMessages int) string {
	res := intel.Extract(fullText)
	p.metrics.ObserveVerdict(res.Critical)
	if !res.Critical {
		p.observe(OutcomeSkipped)
		return OutcomeSkipped
	}

	p.logger.Info("critical scam indicators detected",
		"session_id", sessionID,
		"entities", res.EntityCount(),
		"keywords", res.Keywords,
	)
	if p.sink == nil {
		p.observe(OutcomeNoSink)
		return OutcomeNoSink
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	ctx, span := pipelineTracer.Start(ctx, "report.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("honeypot.session_id", sessionID),
		attribute.Int("honeypot.total_messages", totalMessages),
	)

	start := time.Now()
	if err := p.sink.Send(ctx, NewPayload(sessionID, res, totalMessages)); err != nil {
		span.RecordError(err)
		p.logger.Warn("case report failed",
			"session_id", sessionID,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		p.observe(OutcomeFailed)
		return OutcomeFailed
	}

	p.logger.Info("case report sent",
		"session_id", sessionID,
		"total_messages", totalMessages,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	p.observe(OutcomeSent)
	return OutcomeSent
}

// Wait blocks until in-flight reports finish or ctx is done.
func (p *Pipeline) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pipeline) observe(outcome string) {
	p.metrics.ObserveReport(outcome)
}
