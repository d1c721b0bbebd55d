package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/scam-honeypot/internal/api/router"
	"github.com/wolfman30/scam-honeypot/internal/app/bootstrap"
	appconfig "github.com/wolfman30/scam-honeypot/internal/config"
	"github.com/wolfman30/scam-honeypot/internal/observability/metrics"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting scam-honeypot API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", cfg.CompletionProvider,
	)

	metricsHandler, decoyMetrics := setupMetrics()

	decoy, err := bootstrap.BuildDecoy(context.Background(), cfg, decoyMetrics, logger)
	if err != nil {
		logger.Error("failed to build decoy", "error", err)
		os.Exit(1)
	}

	r := router.New(&router.Config{
		Logger:              logger,
		ConversationHandler: decoy.Handler,
		MetricsHandler:      metricsHandler,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		InboundAPIKey:       cfg.InboundAPIKey,
		OperatorJWTSecret:   cfg.OperatorJWTSecret,
		RateLimitRPS:        cfg.RateLimitRPS,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ReplyDeadline + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	decoy.Close(shutdownCtx)

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics registers the decoy collectors on a dedicated registry
// alongside the Go runtime and process collectors.
func setupMetrics() (http.Handler, *metrics.DecoyMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewDecoyMetrics(reg)
}
