package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/nfl-draft-service/internal/http/handlers"
	"github.com/preston-bernstein/nfl-draft-service/internal/http/middleware"
	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
)

const defaultReadTimeout = 30 * time.Second

// RouterConfig carries the handlers and ambient dependencies for NewRouter.
type RouterConfig struct {
	Handler     *handlers.Handler
	Admin       *handlers.AdminHandler
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	CORSOrigins []string
	ReadTimeout time.Duration
}

// NewRouter registers the public draft routes and, when configured, the admin routes.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = defaultReadTimeout
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	h := cfg.Handler
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(timeout))
		r.Get("/health", h.Health)
		r.Get("/ready", h.Ready)

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", h.Draft)
			r.Get("/picks", h.Picks)
			r.Get("/favorites", h.Favorites)
			r.Get("/archive/{year}", h.Archive)
		})
	})

	// Refresh runs a full cycle, which can outlast the read timeout.
	if cfg.Admin != nil {
		r.Post("/admin/refresh", cfg.Admin.Refresh)
	}
	return r
}
