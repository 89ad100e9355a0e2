// Package orchestrator drives the fixed operation catalogue against an
// execution backend and reduces the outcomes into a suite report.
package orchestrator

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"gambit/internal/analysis"
	"gambit/internal/circuit"
	"gambit/internal/observability"
	"gambit/internal/qpu"
)

// SuiteRun is one complete pass over the operation catalogue. Outcomes hold
// every catalogue operation exactly once, in declaration order.
type SuiteRun struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []analysis.OperationOutcome
	Report     analysis.SuiteReport
}

// Runner executes suite runs. Operations run sequentially; a failing or
// panicking backend poisons only its own operation, never the suite.
type Runner struct {
	client  qpu.Client
	logger  *observability.Logger
	metrics *observability.MetricsCollector
	tracer  *observability.TracerProvider
	shots   int
}

// Option customizes a Runner.
type Option func(*Runner)

// WithMetrics attaches a metrics collector.
func WithMetrics(metrics *observability.MetricsCollector) Option {
	return func(r *Runner) { r.metrics = metrics }
}

// WithTracer attaches a tracer provider.
func WithTracer(tracer *observability.TracerProvider) Option {
	return func(r *Runner) { r.tracer = tracer }
}

// WithShots overrides the per-operation shot count. Non-positive values keep
// the catalogue defaults.
func WithShots(shots int) Option {
	return func(r *Runner) { r.shots = shots }
}

func NewRunner(client qpu.Client, logger *observability.Logger, opts ...Option) *Runner {
	r := &Runner{
		client: client,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = observability.NewLogger(observability.LogConfig{Level: "info", Format: "json"})
	}
	return r
}

// Run executes the full catalogue once. It fails only when the context is
// cancelled; backend failures are folded into the per-operation outcomes.
func (r *Runner) Run(ctx context.Context) (*SuiteRun, error) {
	runID := newRunID()
	ctx = observability.ContextWithRunID(ctx, runID)

	if r.metrics != nil {
		r.metrics.IncrementActiveRuns(ctx)
		defer r.metrics.DecrementActiveRuns(ctx)
	}

	catalogue := circuit.Catalogue()
	r.logger.InfoContext(ctx, "suite run starting", "operations", len(catalogue))

	run := &SuiteRun{
		RunID:     runID,
		StartedAt: time.Now(),
		Outcomes:  make([]analysis.OperationOutcome, 0, len(catalogue)),
	}

	for _, op := range catalogue {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("suite run %s interrupted: %w", runID, err)
		}

		opCtx := observability.ContextWithOperation(ctx, string(op))
		outcome := r.executeOperation(opCtx, op)
		run.Outcomes = append(run.Outcomes, outcome)
		r.recordOutcome(opCtx, outcome)
	}

	run.FinishedAt = time.Now()
	run.Report = analysis.Aggregate(run.Outcomes)

	if r.metrics != nil {
		r.metrics.RecordSuiteRun(ctx, string(run.Report.Readiness), run.Report.AverageEffectiveness)
	}
	r.logger.InfoContext(ctx, "suite run finished",
		"readiness", string(run.Report.Readiness),
		"successful", run.Report.SuccessfulOperations,
		"total", run.Report.TotalOperations)

	return run, nil
}

// executeOperation submits one operation and scores its result. The recover
// boundary keeps a panicking client from taking down the suite.
func (r *Runner) executeOperation(ctx context.Context, op circuit.Operation) (outcome analysis.OperationOutcome) {
	outcome.Operation = op

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "operation panicked", "operation", string(op), "panic", fmt.Sprint(rec))
			outcome = analysis.OperationOutcome{
				Operation: op,
				Err:       fmt.Errorf("operation %s panicked: %v", op, rec),
			}
		}
	}()

	spec := circuit.NewSpec(op, 0, r.shots)
	job := circuit.BuildJob(spec)

	ctx, endSpan := r.startSpan(ctx, job)
	defer endSpan()

	result, err := r.client.Submit(ctx, job)
	if err != nil {
		r.logger.WarnContext(ctx, "operation submission failed", "operation", string(op), "error", err.Error())
		outcome.Err = err
		return outcome
	}
	outcome.Result = result

	scored, err := analysis.Analyze(result)
	if err != nil {
		r.logger.WarnContext(ctx, "operation not scorable", "operation", string(op), "error", err.Error())
		outcome.Err = err
		return outcome
	}
	outcome.Analysis = scored

	r.logger.InfoContext(ctx, "operation completed",
		"operation", string(op),
		"strength", scored.Strength,
		"intelligence", scored.Intelligence,
		"diversity", scored.Diversity)
	return outcome
}

func (r *Runner) startSpan(ctx context.Context, job *circuit.Job) (context.Context, func()) {
	if r.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := r.tracer.StartSpan(ctx, "suite.operation",
		attribute.String(observability.AttrDevice, string(job.Device)),
		attribute.Int(observability.AttrShots, job.Shots))
	return ctx, func() { span.End() }
}

func (r *Runner) recordOutcome(ctx context.Context, outcome analysis.OperationOutcome) {
	if r.metrics == nil {
		return
	}

	device := ""
	shots := 0
	var executionTime time.Duration
	if outcome.Result != nil {
		device = outcome.Result.Device
		shots = outcome.Result.TotalShots()
		executionTime = time.Duration(outcome.Result.ExecutionTime * float64(time.Second))
	}
	r.metrics.RecordJobSubmission(ctx, string(outcome.Operation), device, outcomeStatus(outcome), shots, executionTime)
}

// outcomeStatus labels an outcome for metrics. Only outcomes that scored end
// to end count as success; a backend result that failed scoring is "failed".
func outcomeStatus(outcome analysis.OperationOutcome) string {
	switch {
	case outcome.Succeeded():
		return "success"
	case outcome.Result != nil:
		return "failed"
	default:
		return "error"
	}
}

func newRunID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("run-%s-%s", time.Now().UTC().Format("20060102T150405"), hex.EncodeToString(buf))
}
