package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/couchcryptid/heat-risk-predictor/internal/adapter/artifact"
	"github.com/couchcryptid/heat-risk-predictor/internal/adapter/cache"
	httpadapter "github.com/couchcryptid/heat-risk-predictor/internal/adapter/http"
	"github.com/couchcryptid/heat-risk-predictor/internal/config"
	"github.com/couchcryptid/heat-risk-predictor/internal/domain"
	"github.com/couchcryptid/heat-risk-predictor/internal/observability"
	"github.com/couchcryptid/heat-risk-predictor/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	registry, err := domain.NewPresetRegistry(domain.DefaultPresets())
	if err != nil {
		logger.Error("invalid preset table", "error", err)
		os.Exit(1)
	}

	scaler, err := artifact.LoadScaler(cfg.ScalerPath)
	if err != nil {
		logger.Error("failed to load scaler", "error", err)
		os.Exit(1)
	}
	model, err := artifact.LoadModel(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model", "error", err)
		os.Exit(1)
	}
	artifacts := pipeline.Artifacts{
		Scaler:  scaler,
		Model:   model,
		Version: artifact.Version(scaler, model),
	}
	logger.Info("artifacts loaded",
		"model_path", cfg.ModelPath,
		"model_kind", model.Kind(),
		"scaler_path", cfg.ScalerPath,
		"artifact_version", artifacts.Version,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Score cache (CACHE_BACKEND=none|memory|redis). Off unless configured.
	resultCache, closeCache, err := cache.Open(ctx, cfg)
	if err != nil {
		logger.Error("failed to open score cache", "error", err)
		os.Exit(1)
	}
	if resultCache == nil {
		logger.Info("score cache disabled")
	} else {
		logger.Info("score cache enabled", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)
	}

	p := pipeline.New(domain.NewInputCollector(registry), artifacts, resultCache, logger, metrics)
	if err := p.SelfCheck(ctx); err != nil {
		logger.Error("artifact self-check failed", "error", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, registry, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := closeCache(); err != nil {
		logger.Error("score cache close error", "error", err)
	}

	logger.Info("shutdown complete")
}
