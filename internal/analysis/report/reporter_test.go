package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gambit/internal/analysis"
	"gambit/internal/circuit"
	"gambit/internal/qpu"
)

func sampleArtifact(t *testing.T) RunArtifact {
	t.Helper()

	success := &qpu.Result{
		JobID:         "job-1",
		Device:        "quantum_simulator",
		Success:       true,
		Counts:        map[string]int{"0110": 70, "1001": 30},
		ExecutionTime: 1.5,
	}
	scored, err := analysis.Analyze(success)
	require.NoError(t, err)

	outcomes := []analysis.OperationOutcome{
		{Operation: circuit.OpStrategy, Result: success, Analysis: scored},
		{Operation: circuit.OpMoveEvaluation, Err: errors.New("backend unreachable")},
	}

	started := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	return RunArtifact{
		RunID:      "run-test-0001",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Outcomes:   outcomes,
		Suite:      analysis.Aggregate(outcomes),
	}
}

func TestGenerateWritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifact := sampleArtifact(t)

	mdPath, jsonPath, err := NewReporter(filepath.Join(dir, "nested")).Generate(artifact)
	require.NoError(t, err)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	content := string(md)
	assert.Contains(t, content, "run-test-0001")
	assert.Contains(t, content, "| Chess Strategy | PASS |")
	assert.Contains(t, content, "| Move Evaluation | FAIL |")
	assert.Contains(t, content, "Quantum chess strategy achieved")

	payload, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var view RunView
	require.NoError(t, json.Unmarshal(payload, &view))
	assert.Equal(t, "run-test-0001", view.RunID)
	require.Len(t, view.Operations, 2)
	assert.True(t, view.Operations[0].Success)
	assert.False(t, view.Operations[1].Success)
	assert.Equal(t, "backend unreachable", view.Operations[1].Error)
	assert.Equal(t, analysis.ReadinessDeveloping, view.Suite.Readiness)
}

func TestBuildViewPrefersResultError(t *testing.T) {
	failed := qpu.Failed("job-9", "quantum_simulator", "decoherence")
	artifact := RunArtifact{
		RunID: "run-x",
		Outcomes: []analysis.OperationOutcome{
			{Operation: circuit.OpEndgameOptimization, Result: failed, Err: analysis.ErrOperationFailed},
		},
	}

	view := BuildView(artifact)
	require.Len(t, view.Operations, 1)
	assert.Equal(t, "decoherence", view.Operations[0].Error)
	assert.Equal(t, "job-9", view.Operations[0].JobID)
}

func TestGenerateNoSuccessfulOperations(t *testing.T) {
	outcomes := []analysis.OperationOutcome{
		{Operation: circuit.OpStrategy, Err: errors.New("offline")},
	}
	artifact := RunArtifact{
		RunID:    "run-empty",
		Outcomes: outcomes,
		Suite:    analysis.Aggregate(outcomes),
	}

	mdPath, _, err := NewReporter(t.TempDir()).Generate(artifact)
	require.NoError(t, err)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "No operation completed successfully")
}
