package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ServerOptions struct {
	Addr          string
	Handler       *Handler
	EnableMetrics bool
	Registry      prometheus.Gatherer
}

// StartServer runs the API server until ctx is done, then shuts down
// gracefully.
func StartServer(ctx context.Context, opts ServerOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := opts.Registry
	if registry == nil {
		registry = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	opts.Handler.Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	server := &http.Server{
		Addr:    opts.Addr,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("api server listening",
			zap.String("addr", server.Addr),
			zap.Bool("metrics", opts.EnableMetrics),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("api server failed to start: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("api server shutdown error", zap.Error(err))
			return err
		}
		logger.Info("api server stopped")
		return nil
	}
}
