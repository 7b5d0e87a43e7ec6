package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/app"
)

type serveOptions struct {
	configPath string
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	opts := serveOptions{
		configPath: "radar.yaml",
	}

	root := &cobra.Command{
		Use:   "radard",
		Short: "Security tool discovery service backed by GitHub search",
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to config file")

	root.AddCommand(
		newServeCmd(logger, &opts),
		newValidateCmd(logger, &opts),
	)

	return root
}

func newServeCmd(logger *zap.Logger, opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the tool discovery API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application := app.New(logger)
			return application.Serve(ctx, app.ServeConfig{
				ConfigPath: opts.configPath,
			})
		},
	}
}

func newValidateCmd(logger *zap.Logger, opts *serveOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and curated dataset without serving",
		RunE: func(cmd *cobra.Command, args []string) error {
			application := app.New(logger)
			return application.ValidateConfig(cmd.Context(), app.ServeConfig{
				ConfigPath: opts.configPath,
			})
		},
	}
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
