// Package report renders a finished suite run to markdown and JSON
// artifacts on disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gambit/internal/analysis"
)

// RunArtifact is everything the reporter needs about one finished run.
type RunArtifact struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []analysis.OperationOutcome
	Suite      analysis.SuiteReport
}

// Reporter writes run artifacts under a fixed output directory.
type Reporter struct {
	outputDir string
}

func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// Generate writes the markdown and JSON artifacts for a run and returns
// their paths.
func (r *Reporter) Generate(artifact RunArtifact) (string, string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", "", fmt.Errorf("create report directory: %w", err)
	}

	base := fmt.Sprintf("suite-%s", artifact.RunID)
	mdPath := filepath.Join(r.outputDir, base+".md")
	jsonPath := filepath.Join(r.outputDir, base+".json")

	if err := os.WriteFile(mdPath, []byte(r.buildMarkdown(artifact)), 0644); err != nil {
		return "", "", fmt.Errorf("write markdown report: %w", err)
	}

	payload, err := json.MarshalIndent(BuildView(artifact), "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encode json report: %w", err)
	}
	if err := os.WriteFile(jsonPath, payload, 0644); err != nil {
		return "", "", fmt.Errorf("write json report: %w", err)
	}

	return mdPath, jsonPath, nil
}

func (r *Reporter) buildMarkdown(artifact RunArtifact) string {
	var b strings.Builder

	b.WriteString(r.buildHeader(artifact))
	b.WriteString(r.buildOperationsSection(artifact))
	b.WriteString(r.buildReadinessSection(artifact.Suite))
	b.WriteString(r.buildInsightsSection(artifact))

	return b.String()
}

func (r *Reporter) buildHeader(artifact RunArtifact) string {
	return fmt.Sprintf(`# Quantum Chess Suite Report

**Run ID:** %s
**Started:** %s
**Finished:** %s
**Readiness:** %s

---

`,
		artifact.RunID,
		artifact.StartedAt.Format("2006-01-02 15:04:05"),
		artifact.FinishedAt.Format("2006-01-02 15:04:05"),
		artifact.Suite.Readiness)
}

func (r *Reporter) buildOperationsSection(artifact RunArtifact) string {
	var b strings.Builder
	b.WriteString("## Operations\n\n")
	b.WriteString("| Operation | Status | Strength | Intelligence | Diversity | Time (s) |\n")
	b.WriteString("|-----------|--------|----------|--------------|-----------|----------|\n")

	for _, outcome := range artifact.Outcomes {
		if outcome.Succeeded() {
			b.WriteString(fmt.Sprintf("| %s | PASS | %.3f | %.3f | %d | %.2f |\n",
				outcome.Operation,
				outcome.Analysis.Strength,
				outcome.Analysis.Intelligence,
				outcome.Analysis.Diversity,
				outcome.Result.ExecutionTime))
			continue
		}
		b.WriteString(fmt.Sprintf("| %s | FAIL | - | - | - | - |\n", outcome.Operation))
	}

	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) buildReadinessSection(suite analysis.SuiteReport) string {
	var b strings.Builder
	b.WriteString("## Suite Performance\n\n")

	if suite.Status == analysis.StatusNoSuccessfulOperations {
		b.WriteString("No operation completed successfully; suite metrics are unavailable.\n\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("- Success rate: **%.0f%%** (%d/%d operations)\n",
		suite.SuccessRate*100, suite.SuccessfulOperations, suite.TotalOperations))
	b.WriteString(fmt.Sprintf("- Average effectiveness: **%.3f**\n", suite.AverageEffectiveness))
	b.WriteString(fmt.Sprintf("- Total execution time: %.2fs (%.2fs average)\n",
		suite.TotalExecutionTime, suite.AverageExecutionTime))
	b.WriteString(fmt.Sprintf("- Readiness: **%s**\n\n", suite.Readiness))

	if len(suite.Recommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		for _, rec := range suite.Recommendations {
			b.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Reporter) buildInsightsSection(artifact RunArtifact) string {
	var b strings.Builder
	wrote := false

	for _, outcome := range artifact.Outcomes {
		if !outcome.Succeeded() || len(outcome.Analysis.Insights) == 0 {
			continue
		}
		if !wrote {
			b.WriteString("## Insights\n\n")
			wrote = true
		}
		b.WriteString(fmt.Sprintf("### %s\n\n", outcome.Operation))
		for _, insight := range outcome.Analysis.Insights {
			b.WriteString(fmt.Sprintf("- %s\n", insight))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// OperationView is the serializable form of one operation outcome.
type OperationView struct {
	Operation     string                  `json:"operation"`
	Success       bool                    `json:"success"`
	JobID         string                  `json:"job_id,omitempty"`
	ExecutionTime float64                 `json:"execution_time,omitempty"`
	Error         string                  `json:"error,omitempty"`
	Analysis      *analysis.Effectiveness `json:"chess_analysis,omitempty"`
}

// RunView is the serializable form of a full run, shared by the JSON
// artifact and the HTTP API.
type RunView struct {
	RunID      string               `json:"run_id"`
	StartedAt  time.Time            `json:"started_at"`
	FinishedAt time.Time            `json:"finished_at"`
	Operations []OperationView      `json:"operations"`
	Suite      analysis.SuiteReport `json:"performance_metrics"`
}

// BuildView flattens a run artifact into its serializable form.
func BuildView(artifact RunArtifact) RunView {
	operations := make([]OperationView, 0, len(artifact.Outcomes))
	for _, outcome := range artifact.Outcomes {
		view := OperationView{
			Operation: string(outcome.Operation),
			Success:   outcome.Succeeded(),
			Analysis:  outcome.Analysis,
		}
		if outcome.Result != nil {
			view.JobID = outcome.Result.JobID
			view.ExecutionTime = outcome.Result.ExecutionTime
			if !outcome.Result.Success {
				view.Error = outcome.Result.Error
			}
		}
		if outcome.Err != nil && view.Error == "" {
			view.Error = outcome.Err.Error()
		}
		operations = append(operations, view)
	}

	return RunView{
		RunID:      artifact.RunID,
		StartedAt:  artifact.StartedAt,
		FinishedAt: artifact.FinishedAt,
		Operations: operations,
		Suite:      artifact.Suite,
	}
}
