// Package httpserver serves the block catalog, htmx fragments and the order
// summary API.
package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/hanko-blocks/internal/blocks"
	"finitefield.org/hanko-blocks/internal/catalog"
	custommw "finitefield.org/hanko-blocks/internal/httpserver/middleware"
	"finitefield.org/hanko-blocks/internal/metrics"
	"finitefield.org/hanko-blocks/internal/platform/observability"
	"finitefield.org/hanko-blocks/internal/quote"
)

const (
	defaultHandlerTimeout = 30 * time.Second
	maxSummaryBody        = 1 << 20
)

// Config holds runtime options for the catalog HTTP server.
type Config struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	HandlerTimeout time.Duration

	Catalog catalog.Service
	// Metrics enables GET /metrics and summary counters when set.
	Metrics *metrics.Registry
	Logger  *zap.Logger
	// Locale supplies the currency and language for requests that omit them.
	Locale blocks.Locale
}

// New constructs the HTTP server with the middleware stack and routes.
func New(cfg Config) (*http.Server, error) {
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

// NewHandler builds the router without binding a listener.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("httpserver: catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Locale.SetLocale(blocks.Locale{})

	quotes, err := quote.NewCalculator(quote.Defaults{Currency: cfg.Locale.Currency, Lang: cfg.Locale.Lang})
	if err != nil {
		return nil, err
	}
	h := &Handlers{
		catalog: cfg.Catalog,
		quotes:  quotes,
		metrics: cfg.Metrics,
		locale:  cfg.Locale,
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware)
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RecoveryMiddleware)
	router.Use(observability.RequestLoggerMiddleware)
	router.Use(chimw.Timeout(durationOr(cfg.HandlerTimeout, defaultHandlerTimeout)))
	router.Use(custommw.HTMX())
	router.Use(custommw.Language(cfg.Locale.Lang, "en", "ja"))

	router.Get("/healthz", h.Health)
	if cfg.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	router.Group(func(r chi.Router) {
		r.Use(custommw.NoStore())
		r.Get("/", h.Index)
		r.Get("/blocks/{id}", h.Block)
		RegisterFragment(r, "/blocks/{id}/fragment", h.Fragment)
	})

	router.Post("/api/summary", h.Summary)

	return router, nil
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
