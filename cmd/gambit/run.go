package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gambit/internal/analysis"
	"gambit/internal/analysis/report"
	"gambit/internal/observability"
	"gambit/internal/orchestrator"
)

func newRunCommand(flags *rootFlags) *cobra.Command {
	var (
		shots     int
		seed      int64
		format    string
		reportDir string
		noReport  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the full analysis suite",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if shots > 0 {
				cfg.Suite.Shots = shots
			}
			if cmd.Flags().Changed("seed") {
				cfg.QPU.SimulatorSeed = seed
			}
			if reportDir != "" {
				cfg.Suite.ReportDir = reportDir
			}

			logger := newAppLogger(cfg)

			client, err := buildBackend(cfg, logger)
			if err != nil {
				return err
			}

			// One-shot runs record metrics but never open a scrape port.
			metricsCfg := cfg.Observability.Metrics
			metricsCfg.PrometheusPort = 0
			metrics, err := observability.NewMetricsCollector(metricsCfg)
			if err != nil {
				return fmt.Errorf("init metrics: %w", err)
			}

			tracer, err := observability.NewTracerProvider(cfg.Observability.Tracing)
			if err != nil {
				return fmt.Errorf("init tracing: %w", err)
			}
			defer func() { _ = tracer.Shutdown(cmd.Context()) }()

			runner := orchestrator.NewRunner(client, logger,
				orchestrator.WithMetrics(metrics),
				orchestrator.WithTracer(tracer),
				orchestrator.WithShots(cfg.Suite.Shots))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			run, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			artifact := report.RunArtifact{
				RunID:      run.RunID,
				StartedAt:  run.StartedAt,
				FinishedAt: run.FinishedAt,
				Outcomes:   run.Outcomes,
				Suite:      run.Report,
			}

			if !noReport && cfg.Suite.ReportDir != "" {
				mdPath, jsonPath, err := report.NewReporter(cfg.Suite.ReportDir).Generate(artifact)
				if err != nil {
					return fmt.Errorf("write report artifacts: %w", err)
				}
				logger.Info("report artifacts written", "markdown", mdPath, "json", jsonPath)
			}

			switch format {
			case "json":
				return json.NewEncoder(os.Stdout).Encode(report.BuildView(artifact))
			case "text", "":
				printConsoleReport(run)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	cmd.Flags().IntVar(&shots, "shots", 0, "Shots per operation (0 keeps catalogue defaults)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Simulator seed")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for report artifacts")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing report artifacts")

	return cmd
}

func printConsoleReport(run *orchestrator.SuiteRun) {
	title := color.New(color.Bold, color.FgCyan)
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)

	title.Printf("Quantum Chess Suite: run %s\n\n", run.RunID)

	for _, outcome := range run.Outcomes {
		if outcome.Succeeded() {
			pass.Printf("  PASS  %-22s", outcome.Operation)
			fmt.Printf("strength=%.3f intelligence=%.3f diversity=%d time=%.2fs\n",
				outcome.Analysis.Strength,
				outcome.Analysis.Intelligence,
				outcome.Analysis.Diversity,
				outcome.Result.ExecutionTime)
			continue
		}
		fail.Printf("  FAIL  %-22s", outcome.Operation)
		if outcome.Err != nil {
			fmt.Printf("%v\n", outcome.Err)
		} else {
			fmt.Println()
		}
	}

	fmt.Println()
	suite := run.Report
	if suite.Status == analysis.StatusNoSuccessfulOperations {
		fail.Println("No operation completed successfully.")
		return
	}

	fmt.Printf("Success rate:          %.0f%% (%d/%d)\n", suite.SuccessRate*100, suite.SuccessfulOperations, suite.TotalOperations)
	fmt.Printf("Average effectiveness: %.3f\n", suite.AverageEffectiveness)
	fmt.Printf("Execution time:        %.2fs total, %.2fs average\n", suite.TotalExecutionTime, suite.AverageExecutionTime)

	readiness := color.New(color.Bold)
	switch suite.Readiness {
	case analysis.ReadinessGrandmaster:
		readiness = readiness.Add(color.FgGreen)
	case analysis.ReadinessMaster:
		readiness = readiness.Add(color.FgYellow)
	default:
		readiness = readiness.Add(color.FgRed)
	}
	fmt.Print("Readiness:             ")
	readiness.Println(string(suite.Readiness))

	if len(suite.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range suite.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}
