// Package config loads and validates the application configuration.
// Precedence: built-in defaults, then an optional gambit.yaml, then
// GAMBIT_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"gambit/internal/observability"
	"gambit/internal/qpu"
)

// BackendKind selects which qpu.Client implementation runs the suite.
type BackendKind string

const (
	BackendSimulator BackendKind = "sim"
	BackendHTTP      BackendKind = "http"
)

// SuiteConfig controls how the suite runs and where artifacts land.
type SuiteConfig struct {
	// Shots overrides the per-operation shot count; 0 keeps catalogue defaults.
	Shots     int    `yaml:"shots" mapstructure:"shots"`
	ReportDir string `yaml:"report_dir" mapstructure:"report_dir"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	Host                   string `yaml:"host" mapstructure:"host"`
	Port                   int    `yaml:"port" mapstructure:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// Config is the root configuration block.
type Config struct {
	Backend       BackendKind          `yaml:"backend" mapstructure:"backend"`
	QPU           qpu.Config           `yaml:"qpu" mapstructure:"qpu"`
	Suite         SuiteConfig          `yaml:"suite" mapstructure:"suite"`
	Server        ServerConfig         `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Default returns the configuration used when nothing is provided.
func Default() Config {
	return Config{
		Backend: BackendSimulator,
		QPU:     qpu.DefaultConfig(),
		Suite: SuiteConfig{
			Shots:     0,
			ReportDir: "reports",
		},
		Server: ServerConfig{
			Host:                   "0.0.0.0",
			Port:                   8080,
			ShutdownTimeoutSeconds: 10,
		},
		Observability: observability.DefaultConfig(),
	}
}

// Load reads configuration with viper. configFile, when non-empty, pins an
// explicit file; otherwise gambit.yaml is searched in the working directory
// and $HOME. A missing file is not an error.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("gambit")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("GAMBIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Env-only keys have no file counterpart to latch onto; bind explicitly.
	for key, env := range map[string]string{
		"backend":      "GAMBIT_BACKEND",
		"qpu.api_key":  "GAMBIT_API_KEY",
		"qpu.base_url": "GAMBIT_BASE_URL",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	// A missing file in search mode falls back to defaults; an explicit file
	// that cannot be read is an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	config := Default()
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate rejects configurations the runtime cannot honor.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSimulator, BackendHTTP:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendSimulator, BackendHTTP, c.Backend)
	}

	if c.Backend == BackendHTTP && strings.TrimSpace(c.QPU.BaseURL) == "" {
		return fmt.Errorf("http backend requires qpu.base_url")
	}
	if c.Suite.Shots < 0 {
		return fmt.Errorf("suite.shots must be non-negative, got %d", c.Suite.Shots)
	}
	if c.QPU.FailureRate < 0 || c.QPU.FailureRate > 1 {
		return fmt.Errorf("qpu.failure_rate must be in [0,1], got %v", c.QPU.FailureRate)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if rate := c.Observability.Tracing.SampleRate; rate <= 0 || rate > 1 {
		return fmt.Errorf("observability.tracing.sample_rate must be in (0,1], got %v", rate)
	}
	return nil
}
