package bootstrap

import (
	"context"
	"strings"

	appconfig "github.com/wolfman30/scam-honeypot/internal/config"
	"github.com/wolfman30/scam-honeypot/internal/report"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

// BuildReportSink picks the HTTP endpoint when REPORT_URL is set, else the SQS
// queue when REPORT_QUEUE_URL is set. With neither, the sink is nil and
// verdicts are only logged.
func BuildReportSink(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (report.Sink, error) {
	switch {
	case strings.TrimSpace(cfg.ReportURL) != "":
		sink, err := report.NewHTTPSink(report.HTTPSinkConfig{
			URL:     cfg.ReportURL,
			APIKey:  cfg.ReportAPIKey,
			Timeout: cfg.ReportTimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("case reports will be posted", "url", cfg.ReportURL)
		return sink, nil
	case strings.TrimSpace(cfg.ReportQueueURL) != "":
		awsCfg, err := LoadAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("case reports will be queued", "queue_url", cfg.ReportQueueURL)
		return report.NewSQSSink(newSQSClient(awsCfg, cfg.AWSEndpointOverride), cfg.ReportQueueURL), nil
	default:
		logger.Warn("no case report destination configured, verdicts are logged only")
		return nil, nil
	}
}
