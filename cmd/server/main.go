package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Simplici0/clinicprice/internal/config"
	"github.com/Simplici0/clinicprice/internal/db"
	"github.com/Simplici0/clinicprice/internal/logger"
	"github.com/Simplici0/clinicprice/internal/migrations"
	"github.com/Simplici0/clinicprice/internal/seed"
	"github.com/Simplici0/clinicprice/internal/store"
)

type server struct {
	store    *store.Store
	logger   *slog.Logger
	metrics  *metrics
	gatherer prometheus.Gatherer
	now      func() time.Time
}

func newServer(st *store.Store, log *slog.Logger, reg *prometheus.Registry) *server {
	return &server{
		store:    st,
		logger:   log,
		metrics:  newMetrics(reg),
		gatherer: reg,
		now:      time.Now,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	version, err := migrations.Up(ctx, database, cfg.MigrationsDir)
	if err != nil {
		log.Error("failed to run database migrations", "err", err)
		os.Exit(1)
	}
	log.Info("database ready", "path", cfg.DBPath, "schema_version", version)

	stats, err := seed.Run(database, seed.Config{StarterData: cfg.SeedStarterData})
	if err != nil {
		log.Error("failed to seed database", "err", err)
		os.Exit(1)
	}
	log.Info("seed complete", "inserts", stats.Inserts, "starter_data", cfg.SeedStarterData)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := newServer(store.New(database), log, reg)
	if err := start(ctx, cfg, srv.routes(), log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/capacity", s.handleGetCapacity)
		r.Put("/capacity", s.handlePutCapacity)
		r.Get("/services/{id}/price", s.handleServicePrice)
		r.Post("/price/preview", s.handlePricePreview)
		r.Post("/variance", s.handleVariance)
		r.Get("/price-list", s.handlePriceList)
		r.Get("/price-list.xlsx", s.handlePriceListExport)
		r.Get("/dashboard/stats", s.handleDashboardStats)
	})

	return r
}

// start runs the HTTP server until ctx is cancelled, then drains it.
func start(ctx context.Context, cfg config.Config, handler http.Handler, log *slog.Logger) error {
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
