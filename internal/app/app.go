// Package app wires together every DCLG dependency and runs the HTTP
// server, adapted from the teacher's per-service app package but trimmed to
// the stores and collaborators the generator actually needs.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/assembler"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cache"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/cluster"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/config"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/health"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/platform/tracing"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/scorer"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/service"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store/postgres"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/store/resilient"
	transporthttp "github.com/bruhhgnik/DCLG-outfitrec/internal/transport/http"
	"github.com/bruhhgnik/DCLG-outfitrec/internal/validity"
)

// App wires together all dependencies and runs the DCLG HTTP server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    cfg.TracingServiceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	callTimeout := time.Duration(cfg.StoreCallTimeoutMillis) * time.Millisecond

	productCfg := resilient.DefaultConfig("product-store")
	productCfg.CallTimeout = callTimeout
	products := resilient.NewProductStore(postgres.NewProductStore(pool), productCfg, logger)

	edgeCfg := resilient.DefaultConfig("edge-store")
	edgeCfg.CallTimeout = callTimeout
	edges := resilient.NewEdgeStore(postgres.NewEdgeStore(pool), edgeCfg, logger)

	fc, err := cache.New(cfg.CacheCapacity, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("create fingerprint cache: %w", err)
	}

	filter := validity.New(validity.Config{
		StrictAesthetics: cfg.StrictAesthetics,
		FormalitySpread:  cfg.FormalitySpread,
	})

	clusterer := cluster.New()

	assemblerCfg := assembler.DefaultConfig()
	assemblerCfg.IntraLookFormalitySpread = cfg.IntraLookFormalitySpread

	svcCfg := service.Config{
		MinEdgeScore: cfg.MinEdgeScore,
		MaxLooks:     cfg.MaxLooks,
		CoherenceWeights: scorer.Weights{
			Alpha: cfg.CoherenceAlpha,
			Beta:  cfg.CoherenceBeta,
			Gamma: cfg.CoherenceGamma,
		},
	}

	svc := service.New(products, edges, fc, filter, clusterer, assemblerCfg, svcCfg, logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("product_store", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.RegisterCritical("edge_store", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	router := transporthttp.NewRouter(svc, healthHandler, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Postgres connection pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
