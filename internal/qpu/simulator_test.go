package qpu

import (
	"context"
	"testing"

	"gambit/internal/circuit"
)

func TestSimulatorDeterministicForSeed(t *testing.T) {
	job := circuit.BuildJob(circuit.DefaultSpec(circuit.OpPositionAnalysis))

	first, err := NewSimulator(42, 0, nil).Submit(context.Background(), job)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := NewSimulator(42, 0, nil).Submit(context.Background(), job)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if len(first.Counts) != len(second.Counts) {
		t.Fatalf("outcome sets differ: %d vs %d", len(first.Counts), len(second.Counts))
	}
	for outcome, count := range first.Counts {
		if second.Counts[outcome] != count {
			t.Errorf("outcome %q: %d vs %d", outcome, count, second.Counts[outcome])
		}
	}
}

func TestSimulatorShotConservation(t *testing.T) {
	sim := NewSimulator(7, 0, nil)
	for _, op := range circuit.Catalogue() {
		job := circuit.BuildJob(circuit.DefaultSpec(op))
		result, err := sim.Submit(context.Background(), job)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if !result.Success {
			t.Fatalf("%s: unexpected failure %q", op, result.Error)
		}
		if got := result.TotalShots(); got != job.Shots {
			t.Errorf("%s: total shots %d, want %d", op, got, job.Shots)
		}
		for outcome := range result.Counts {
			if len(outcome) < 3 || len(outcome) > 4 {
				t.Errorf("%s: outcome %q has unexpected width", op, outcome)
			}
		}
	}
}

func TestSimulatorFailureInjection(t *testing.T) {
	sim := NewSimulator(1, 1.0, nil)
	result, err := sim.Submit(context.Background(), circuit.BuildJob(circuit.DefaultSpec(circuit.OpStrategy)))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Success {
		t.Fatal("expected injected failure")
	}
	if result.Error == "" {
		t.Error("failed result carries no reason")
	}
}

func TestSimulatorHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(1, 0, nil).Submit(ctx, circuit.BuildJob(circuit.DefaultSpec(circuit.OpStrategy)))
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestProgramWidth(t *testing.T) {
	program := circuit.Render(circuit.DefaultSpec(circuit.OpMoveEvaluation))
	width, err := programWidth(program)
	if err != nil {
		t.Fatalf("programWidth: %v", err)
	}
	if width != 3 {
		t.Errorf("width = %d, want 3", width)
	}

	if _, err := programWidth("OPENQASM 3.0;"); err == nil {
		t.Error("expected error for program without qubit register")
	}
}
