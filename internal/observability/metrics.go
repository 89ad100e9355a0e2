package observability

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsCollector manages all metrics for GAMBIT
type MetricsCollector struct {
	meter metric.Meter

	// Job metrics
	jobSubmissions metric.Int64Counter
	jobShots       metric.Int64Counter
	jobDuration    metric.Float64Histogram

	// Suite metrics
	suiteRuns          metric.Int64Counter
	suiteEffectiveness metric.Float64Histogram
	runsActive         metric.Int64UpDownCounter

	// Server for Prometheus scraping
	prometheusServer *http.Server
}

// MetricsConfig configures the metrics collector
type MetricsConfig struct {
	Enabled        bool `yaml:"enabled" mapstructure:"enabled"`
	PrometheusPort int  `yaml:"prometheus_port" mapstructure:"prometheus_port"`
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(config MetricsConfig) (*MetricsCollector, error) {
	if !config.Enabled {
		return &MetricsCollector{}, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter("gambit")

	jobSubmissions, err := meter.Int64Counter(
		"gambit.jobs.submissions.total",
		metric.WithDescription("Total number of quantum job submissions"),
		metric.WithUnit("{job}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job_submissions counter: %w", err)
	}

	jobShots, err := meter.Int64Counter(
		"gambit.jobs.shots.total",
		metric.WithDescription("Total shots requested across submitted jobs"),
		metric.WithUnit("{shot}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job_shots counter: %w", err)
	}

	jobDuration, err := meter.Float64Histogram(
		"gambit.jobs.duration",
		metric.WithDescription("Backend-reported job execution time in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job_duration histogram: %w", err)
	}

	suiteRuns, err := meter.Int64Counter(
		"gambit.suite.runs.total",
		metric.WithDescription("Total number of analysis suite runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create suite_runs counter: %w", err)
	}

	suiteEffectiveness, err := meter.Float64Histogram(
		"gambit.suite.effectiveness",
		metric.WithDescription("Average effectiveness score per suite run"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create suite_effectiveness histogram: %w", err)
	}

	runsActive, err := meter.Int64UpDownCounter(
		"gambit.runs.active",
		metric.WithDescription("Number of in-flight suite runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create runs_active gauge: %w", err)
	}

	collector := &MetricsCollector{
		meter:              meter,
		jobSubmissions:     jobSubmissions,
		jobShots:           jobShots,
		jobDuration:        jobDuration,
		suiteRuns:          suiteRuns,
		suiteEffectiveness: suiteEffectiveness,
		runsActive:         runsActive,
	}

	if config.PrometheusPort > 0 {
		if err := collector.StartPrometheusServer(config.PrometheusPort); err != nil {
			return nil, fmt.Errorf("failed to start prometheus server: %w", err)
		}
	}

	return collector, nil
}

// StartPrometheusServer starts the Prometheus metrics server
func (m *MetricsCollector) StartPrometheusServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promclient.Handler())

	m.prometheusServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		log.Printf("Prometheus metrics server listening on :%d", port)
		if err := m.prometheusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Prometheus server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics collector
func (m *MetricsCollector) Shutdown(ctx context.Context) error {
	if m.prometheusServer != nil {
		return m.prometheusServer.Shutdown(ctx)
	}
	return nil
}

// RecordJobSubmission records a quantum job submission outcome
func (m *MetricsCollector) RecordJobSubmission(ctx context.Context, operation, device, status string, shots int, executionTime time.Duration) {
	if m.jobSubmissions == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.String("device", device),
		attribute.String("status", status),
	}

	m.jobSubmissions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.jobShots.Add(ctx, int64(shots), metric.WithAttributes(attribute.String("operation", operation)))
	m.jobDuration.Record(ctx, executionTime.Seconds(), metric.WithAttributes(attrs...))
}

// RecordSuiteRun records a completed suite run
func (m *MetricsCollector) RecordSuiteRun(ctx context.Context, readiness string, averageEffectiveness float64) {
	if m.suiteRuns == nil {
		return
	}

	m.suiteRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("readiness", readiness)))
	m.suiteEffectiveness.Record(ctx, averageEffectiveness)
}

// IncrementActiveRuns increments the in-flight suite run counter
func (m *MetricsCollector) IncrementActiveRuns(ctx context.Context) {
	if m.runsActive == nil {
		return
	}
	m.runsActive.Add(ctx, 1)
}

// DecrementActiveRuns decrements the in-flight suite run counter
func (m *MetricsCollector) DecrementActiveRuns(ctx context.Context) {
	if m.runsActive == nil {
		return
	}
	m.runsActive.Add(ctx, -1)
}
