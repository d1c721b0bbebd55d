package bootstrap

import (
	"context"
	"fmt"

	appconfig "github.com/wolfman30/scam-honeypot/internal/config"
	"github.com/wolfman30/scam-honeypot/internal/conversation"
	"github.com/wolfman30/scam-honeypot/internal/observability/metrics"
	"github.com/wolfman30/scam-honeypot/internal/report"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

// Decoy bundles the per-process components behind the turn handler.
type Decoy struct {
	Handler  *conversation.Handler
	Pool     *conversation.WorkerPool
	Pipeline *report.Pipeline

	closeCompleter func()
	logger         *logging.Logger
}

// BuildDecoy wires completion, orchestration and reporting from config.
// Provider or sink construction failures degrade to stall replies and
// log-only verdicts; they never stop the decoy from answering.
func BuildDecoy(ctx context.Context, cfg *appconfig.Config, m *metrics.DecoyMetrics, logger *logging.Logger) (*Decoy, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	completer, closeCompleter, err := BuildCompleter(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build completion provider, using stall replies only", "error", err)
		completer, closeCompleter = nil, func() {}
	}
	sink, err := BuildReportSink(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build report sink, verdicts will only be logged", "error", err)
		sink = nil
	}

	pool := conversation.NewWorkerPool(cfg.CompletionWorkers, cfg.CompletionQueueSize, conversation.WithPoolLogger(logger))
	orchestrator := conversation.NewOrchestrator(completer, pool,
		conversation.WithReplyDeadline(cfg.ReplyDeadline),
		conversation.WithOrchestratorMetrics(m),
		conversation.WithOrchestratorLogger(logger),
	)
	pipeline := report.NewPipeline(sink,
		report.WithSendTimeout(cfg.ReportTimeout),
		report.WithPipelineMetrics(m),
		report.WithPipelineLogger(logger),
	)
	handler := conversation.NewHandler(orchestrator, pipeline, logger,
		conversation.WithIntelligenceEcho(cfg.ExposeIntelligence),
	)

	return &Decoy{
		Handler:        handler,
		Pool:           pool,
		Pipeline:       pipeline,
		closeCompleter: closeCompleter,
		logger:         logger,
	}, nil
}

// Close drains in-flight reports until ctx is done, then stops the worker
// pool and releases provider resources.
func (d *Decoy) Close(ctx context.Context) {
	if err := d.Pipeline.Wait(ctx); err != nil {
		d.logger.Warn("in-flight case reports abandoned", "error", err)
	}
	d.Pool.Close()
	d.closeCompleter()
}
