package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/nfl-draft-service/internal/cache"
	"github.com/preston-bernstein/nfl-draft-service/internal/config"
	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
	"github.com/preston-bernstein/nfl-draft-service/internal/espn"
	"github.com/preston-bernstein/nfl-draft-service/internal/fetch"
	httpserver "github.com/preston-bernstein/nfl-draft-service/internal/http"
	"github.com/preston-bernstein/nfl-draft-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
	"github.com/preston-bernstein/nfl-draft-service/internal/poller"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	updater       *draft.Updater
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closers       []func() error
}

// New constructs a server wired to the configured provider, cache and archive.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, clockwork.NewRealClock())
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, clock clockwork.Clock) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	store, closeStore := buildCacheStore(cfg.Cache, clock, logger)
	archives := buildArchive(cfg.Archive)
	updater := buildUpdater(cfg, store, archives.archiver, clock, logger, recorder)

	plr := poller.New(updater, logger, cfg.PollInterval)
	httpSrv := buildHTTPServer(cfg, updater, archives, plr, logger, recorder)

	srv := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		updater:       updater,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
	if closeStore != nil {
		srv.closers = append(srv.closers, closeStore)
	}
	return srv
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildUpdater(cfg config.Config, store cache.Store, archiver draft.Archiver, clock clockwork.Clock, logger *slog.Logger, recorder *metrics.Recorder) *draft.Updater {
	gateway := fetch.New(fetch.Config{
		Retries: cfg.ESPN.Retries,
		Logger:  logger,
		Metrics: recorder,
	})
	client := espn.NewClient(espn.Config{
		SiteBaseURL: cfg.ESPN.SiteBaseURL,
		CoreBaseURL: cfg.ESPN.CoreBaseURL,
		Fetcher:     gateway,
		Cache:       cache.New(store, logger, recorder),
		Policy:      cache.NewPolicy(cfg.Draft.LiveRefresh, cfg.Draft.ProjectionRefresh),
		Logger:      logger,
	})
	source := selectSource(cfg, client, draft.NewTracker(clock), logger)

	return draft.NewUpdater(draft.UpdaterConfig{
		Source:            source,
		Synthesizer:       draft.NewSynthesizer(cfg.Draft.Rounds, cfg.Draft.FavoriteTeams),
		DraftYear:         cfg.Draft.Season(),
		LiveRefresh:       cfg.Draft.LiveRefresh,
		ProjectionRefresh: cfg.Draft.ProjectionRefresh,
		Clock:             clock,
		Logger:            logger,
		Metrics:           recorder,
		Archiver:          archiver,
	})
}

func buildHTTPServer(cfg config.Config, updater *draft.Updater, archives archiveComponents, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	var onRefresh func(error)
	if plr != nil {
		statusFn = plr.Status
		onRefresh = plr.RecordRefresh
	}

	session := updater.Session()
	routerCfg := httpserver.RouterConfig{
		Handler:     handlers.NewHandler(session, archives.store, logger, statusFn),
		Logger:      logger,
		Metrics:     recorder,
		CORSOrigins: cfg.CORSOrigins,
	}
	// The admin surface only exists when a token is configured.
	if cfg.AdminToken != "" {
		routerCfg.Admin = handlers.NewAdminHandler(updater, session, cfg.AdminToken, logger, onRefresh)
	}

	return newNetHTTPServer(":"+cfg.Port, httpserver.NewRouter(routerCfg), apiTimeouts)
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
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
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logging.Warn(s.logger, "cache close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = newNetHTTPServer(":"+recCfg.Port, mux, metricsTimeouts)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
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
