// Package app wires configuration, the provider client, the curated
// catalog, the aggregator, and the HTTP surface into a runnable service.
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/infra/aggregator"
	"github.com/T3chfalcon/offsec-radar/internal/infra/catalog"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
	"github.com/T3chfalcon/offsec-radar/internal/infra/httpapi"
	"github.com/T3chfalcon/offsec-radar/internal/infra/telemetry"
)

type App struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{logger: logger.Named("app")}
}

type ServeConfig struct {
	ConfigPath string
}

// Serve runs the API server until ctx is cancelled.
func (a *App) Serve(ctx context.Context, serve ServeConfig) error {
	cfg, err := LoadConfig(serve.ConfigPath)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(a.logger, cfg.DatasetPath)
	if err != nil {
		return err
	}
	store.Watch(ctx)

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(registry)

	client := github.NewClient(github.Config{
		BaseURL: cfg.Provider.BaseURL,
		Token:   cfg.Provider.Token,
		Logger:  a.logger,
	})
	if cfg.Provider.Token == "" {
		a.logger.Info("no provider token configured, using unauthenticated rate limits")
	}

	agg := aggregator.New(aggregator.Config{
		Provider: client,
		Catalog:  store,
		Logger:   a.logger,
		Metrics:  metrics,
	})

	handler := httpapi.NewHandler(agg, store, a.logger)
	return httpapi.StartServer(ctx, httpapi.ServerOptions{
		Addr:          cfg.ListenAddress,
		Handler:       handler,
		EnableMetrics: cfg.EnableMetrics,
		Registry:      registry,
	}, a.logger)
}

// ValidateConfig loads the config and curated dataset without serving.
func (a *App) ValidateConfig(_ context.Context, serve ServeConfig) error {
	cfg, err := LoadConfig(serve.ConfigPath)
	if err != nil {
		return err
	}
	if _, err := catalog.NewStore(a.logger, cfg.DatasetPath); err != nil {
		return err
	}
	a.logger.Info("configuration valid", zap.String("listen", cfg.ListenAddress))
	return nil
}
