// Package qpu talks to quantum execution backends. A backend accepts a job
// descriptor and eventually produces a measurement-count histogram; everything
// about its scheduling and transport is opaque to the rest of the system.
package qpu

import (
	"context"

	"gambit/internal/circuit"
)

// Client submits jobs to an execution backend.
//
// Submit may report failure two ways: by returning an error, or by returning
// a Result with Success=false. Callers must treat both as the same class of
// recoverable operation failure.
type Client interface {
	Submit(ctx context.Context, job *circuit.Job) (*Result, error)
	Devices(ctx context.Context) ([]Device, error)
}

// Device describes one backend execution target.
type Device struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Qubits   int    `json:"qubits"`
}

// Config configures a backend client.
type Config struct {
	APIKey           string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL          string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds   int     `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxRetries       int     `yaml:"max_retries" mapstructure:"max_retries"`
	PollIntervalMS   int     `yaml:"poll_interval_ms" mapstructure:"poll_interval_ms"`
	MaxResponseBytes int64   `yaml:"max_response_bytes" mapstructure:"max_response_bytes"`
	SimulatorSeed    int64   `yaml:"simulator_seed" mapstructure:"simulator_seed"`
	FailureRate      float64 `yaml:"failure_rate" mapstructure:"failure_rate"`
}

// DefaultConfig returns sensible defaults for the hosted backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:          "https://api.qbraid.com/api",
		TimeoutSeconds:   60,
		MaxRetries:       3,
		PollIntervalMS:   500,
		MaxResponseBytes: 1 << 20,
	}
}
