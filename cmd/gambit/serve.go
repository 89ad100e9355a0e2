package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gambit/internal/analysis/report"
	"gambit/internal/observability"
	"gambit/internal/orchestrator"
	"gambit/internal/server"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			logger := newAppLogger(cfg)

			client, err := buildBackend(cfg, logger)
			if err != nil {
				return err
			}

			metrics, err := observability.NewMetricsCollector(cfg.Observability.Metrics)
			if err != nil {
				return fmt.Errorf("init metrics: %w", err)
			}

			tracer, err := observability.NewTracerProvider(cfg.Observability.Tracing)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}

			runner := orchestrator.NewRunner(client, logger,
				orchestrator.WithMetrics(metrics),
				orchestrator.WithTracer(tracer),
				orchestrator.WithShots(cfg.Suite.Shots))

			var reporter *report.Reporter
			if cfg.Suite.ReportDir != "" {
				reporter = report.NewReporter(cfg.Suite.ReportDir)
			}

			srv := server.New(cfg.Server, runner, reporter, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = srv.Run(ctx)

			shutdownCtx := cmd.Context()
			if terr := tracer.Shutdown(shutdownCtx); terr != nil {
				logger.Warn("tracer shutdown failed", "error", terr.Error())
			}
			if merr := metrics.Shutdown(shutdownCtx); merr != nil {
				logger.Warn("metrics shutdown failed", "error", merr.Error())
			}
			return err
		},
	}
	return cmd
}
