package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gambit/internal/config"
	"gambit/internal/logging"
	"gambit/internal/observability"
	"gambit/internal/qpu"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configFile string
	verbose    bool
	backend    string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "gambit",
		Short:         "Quantum-enhanced chess analysis orchestrator",
		Long:          "gambit submits a fixed catalogue of chess analysis operations to a quantum execution backend and reduces the results into effectiveness and readiness metrics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				logging.SetDefaultLevel(logging.LevelDebug)
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "Config file (default: gambit.yaml in . or $HOME)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "Execution backend: sim or http")

	rootCmd.AddCommand(newRunCommand(flags))
	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newDevicesCommand(flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig resolves configuration and applies root-level flag overrides.
func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return config.Config{}, err
	}
	if flags.backend != "" {
		cfg.Backend = config.BackendKind(flags.backend)
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	if flags.verbose {
		cfg.Observability.Logging.Level = "debug"
	}
	return cfg, nil
}

func newAppLogger(cfg config.Config) *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:  cfg.Observability.Logging.Level,
		Format: cfg.Observability.Logging.Format,
	})
}

// slogAdapter lets the printf-style component loggers fan out into the
// structured application logger.
type slogAdapter struct {
	logger *observability.Logger
}

func (a slogAdapter) Debug(format string, args ...any) { a.logger.Debug(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Info(format string, args ...any)  { a.logger.Info(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Warn(format string, args ...any)  { a.logger.Warn(fmt.Sprintf(format, args...)) }
func (a slogAdapter) Error(format string, args ...any) { a.logger.Error(fmt.Sprintf(format, args...)) }

// buildBackend constructs the qpu client the configuration asks for.
func buildBackend(cfg config.Config, logger *observability.Logger) (qpu.Client, error) {
	backendLog := logging.Multi(logging.NewComponentLogger("backend"), slogAdapter{logger: logger})
	switch cfg.Backend {
	case config.BackendHTTP:
		logger.Info("using HTTP quantum backend",
			"base_url", cfg.QPU.BaseURL,
			"api_key", observability.SanitizeAPIKey(cfg.QPU.APIKey))
		return qpu.NewHTTPClient(cfg.QPU, backendLog)
	case config.BackendSimulator:
		return qpu.NewSimulator(cfg.QPU.SimulatorSeed, cfg.QPU.FailureRate, backendLog), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
