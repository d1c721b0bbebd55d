package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/scam-honeypot/internal/app/bootstrap"
	appconfig "github.com/wolfman30/scam-honeypot/internal/config"
	"github.com/wolfman30/scam-honeypot/internal/scamsim"
	"github.com/wolfman30/scam-honeypot/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := scamsim.NewRootCommand(localDecoy).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// localDecoy wires the same components as the API server, minus HTTP.
func localDecoy(ctx context.Context) (scamsim.Target, func(), error) {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	decoy, err := bootstrap.BuildDecoy(ctx, cfg, nil, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		waitCtx, cancel := context.WithTimeout(context.Background(), cfg.ReportTimeout+time.Second)
		defer cancel()
		decoy.Close(waitCtx)
	}
	return scamsim.NewLocalTarget(decoy.Handler), cleanup, nil
}
