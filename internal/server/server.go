package server

import (
	"context"
	"log/slog"
	"net/http"

	appgroups "github.com/preston-bernstein/team-roster-service/internal/app/groups"
	appplayers "github.com/preston-bernstein/team-roster-service/internal/app/players"
	"github.com/preston-bernstein/team-roster-service/internal/config"
	httpserver "github.com/preston-bernstein/team-roster-service/internal/http"
	"github.com/preston-bernstein/team-roster-service/internal/http/handlers"
	"github.com/preston-bernstein/team-roster-service/internal/http/middleware"
	"github.com/preston-bernstein/team-roster-service/internal/keys"
	"github.com/preston-bernstein/team-roster-service/internal/logging"
	"github.com/preston-bernstein/team-roster-service/internal/metrics"
	"github.com/preston-bernstein/team-roster-service/internal/records"
	"github.com/preston-bernstein/team-roster-service/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	substrate      store.Substrate
	groupsService  *appgroups.Service
	playersService *appplayers.Service
	httpServer     httpServer
	metricsServer  httpServer
	metricsStop    func(context.Context) error
}

// New constructs a server over the configured storage backend.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	sub, err := newSubstrateFactory(logger, recorder).build(ctx, cfg.Storage)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}

	srv := newServerWithSubstrate(cfg, logger, sub, recorder)
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

// newServerWithSubstrate wires services and HTTP over an already-wrapped substrate.
func newServerWithSubstrate(cfg config.Config, logger *slog.Logger, sub store.Substrate, recorder *metrics.Recorder) *Server {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	groupSvc, playerSvc := buildServices(cfg, sub, logger, recorder)
	httpSrv := buildHTTPServer(cfg, sub, groupSvc, playerSvc, logger, recorder)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		substrate:      sub,
		groupsService:  groupSvc,
		playersService: playerSvc,
		httpServer:     httpSrv,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, sub store.Substrate, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		substrate:  sub,
		httpServer: httpSrv,
	}
}

func buildServices(cfg config.Config, sub store.Substrate, logger *slog.Logger, recorder *metrics.Recorder) (*appgroups.Service, *appplayers.Service) {
	repo := records.New(sub, keys.NewScheme(cfg.Storage.KeyPrefix))
	return appgroups.NewService(repo, logger, recorder), appplayers.NewService(repo, logger, recorder)
}

func buildHTTPServer(cfg config.Config, sub store.Substrate, groupSvc *appgroups.Service, playerSvc *appplayers.Service, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	ready := func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		return store.Ping(pingCtx, sub)
	}

	handler := handlers.NewHandler(groupSvc, playerSvc, ready, logger)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting",
			slog.String("addr", s.httpServer.Addr()),
			slog.String(logging.FieldBackend, s.cfg.Storage.Backend),
		)
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Storage closes only after in-flight requests drain.
	if err := store.Close(s.substrate); err != nil && s.logger != nil {
		s.logger.Warn("storage close failed", "error", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
