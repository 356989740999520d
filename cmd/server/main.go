package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/team-roster-service/internal/config"
	"github.com/preston-bernstein/team-roster-service/internal/logging"
	"github.com/preston-bernstein/team-roster-service/internal/server"
)

const (
	serviceName = "team-roster-service"
	appVersion  = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := newLogger(cfg.Logging, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(ctx, logger, "failed to start server", err, logging.FieldBackend, cfg.Storage.Backend)
		stop()
		os.Exit(1)
	}
	srv.Run(ctx, stop)
}

func newLogger(cfg config.LoggingConfig, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Level,
		Format:  cfg.Format,
		Service: serviceName,
		Version: appVersion,
		Output:  out,
	})
}
