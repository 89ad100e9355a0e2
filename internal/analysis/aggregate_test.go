package analysis

import (
	"errors"
	"math"
	"testing"

	"gambit/internal/circuit"
	"gambit/internal/qpu"
)

func successfulOutcome(op circuit.Operation, strength, executionTime float64) OperationOutcome {
	counts := map[string]int{"0110": int(strength * 100), "1001": 100 - int(strength*100)}
	result := successResult(counts, executionTime)
	analysis, err := Analyze(result)
	if err != nil {
		panic(err)
	}
	return OperationOutcome{Operation: op, Result: result, Analysis: analysis}
}

func failedOutcome(op circuit.Operation) OperationOutcome {
	return OperationOutcome{
		Operation: op,
		Result:    qpu.Failed("job-f", "quantum_simulator", "injected"),
		Err:       errors.New("injected"),
	}
}

func TestAggregateEmptySuccessShortCircuits(t *testing.T) {
	outcomes := []OperationOutcome{
		failedOutcome(circuit.OpStrategy),
		failedOutcome(circuit.OpMoveEvaluation),
	}

	report := Aggregate(outcomes)
	if report.Status != StatusNoSuccessfulOperations {
		t.Fatalf("status = %q, want %q", report.Status, StatusNoSuccessfulOperations)
	}
	if report.TotalOperations != 2 {
		t.Errorf("total = %d, want 2", report.TotalOperations)
	}
	if report.SuccessfulOperations != 0 || report.SuccessRate != 0 {
		t.Errorf("expected zero successes, got %+v", report)
	}
}

func TestAggregateReadinessTiers(t *testing.T) {
	tests := []struct {
		successes int
		want      ReadinessTier
	}{
		{1, ReadinessDeveloping},
		{2, ReadinessMaster},
		{3, ReadinessMaster},
		{4, ReadinessGrandmaster},
		{5, ReadinessGrandmaster},
	}

	catalogue := circuit.Catalogue()
	for _, tt := range tests {
		outcomes := make([]OperationOutcome, 0, len(catalogue))
		for i, op := range catalogue {
			if i < tt.successes {
				outcomes = append(outcomes, successfulOutcome(op, 0.6, 1.0))
			} else {
				outcomes = append(outcomes, failedOutcome(op))
			}
		}

		report := Aggregate(outcomes)
		if report.Readiness != tt.want {
			t.Errorf("%d successes: readiness = %q, want %q", tt.successes, report.Readiness, tt.want)
		}
		if report.SuccessfulOperations != tt.successes {
			t.Errorf("%d successes: counted %d", tt.successes, report.SuccessfulOperations)
		}
	}
}

func TestAggregateTimingAndEffectiveness(t *testing.T) {
	outcomes := []OperationOutcome{
		successfulOutcome(circuit.OpStrategy, 0.7, 2.0),
		successfulOutcome(circuit.OpMoveEvaluation, 0.9, 4.0),
		failedOutcome(circuit.OpPositionAnalysis),
	}

	report := Aggregate(outcomes)

	if report.SuccessRate != 2.0/3.0 {
		t.Errorf("success rate = %v, want 2/3", report.SuccessRate)
	}
	if report.TotalExecutionTime != 6.0 {
		t.Errorf("total time = %v, want 6.0", report.TotalExecutionTime)
	}
	if report.AverageExecutionTime != 3.0 {
		t.Errorf("average time = %v, want 3.0", report.AverageExecutionTime)
	}
	// Averages the dominant-outcome share, not the entropy score.
	if math.Abs(report.AverageEffectiveness-0.8) > 1e-12 {
		t.Errorf("average effectiveness = %v, want 0.8", report.AverageEffectiveness)
	}
}

func TestAggregateRecommendationGates(t *testing.T) {
	tournament := "Chess AI ready for quantum-enhanced tournament play"
	advanced := "Chess AI ready for advanced quantum strategy"
	grandmaster := "Grandmaster-level chess intelligence achieved"

	tests := []struct {
		name      string
		successes int
		strength  float64
		want      []string
	}{
		{
			name:      "high rate high strength",
			successes: 4,
			strength:  0.75,
			want:      []string{tournament, grandmaster},
		},
		{
			name:      "high rate modest strength",
			successes: 4,
			strength:  0.6,
			want:      []string{tournament},
		},
		{
			name:      "mid rate",
			successes: 3,
			strength:  0.6,
			want:      []string{advanced},
		},
		{
			name:      "low rate strong distribution",
			successes: 1,
			strength:  0.9,
			want:      []string{grandmaster},
		},
		{
			name:      "low rate weak distribution",
			successes: 1,
			strength:  0.5,
			want:      []string{},
		},
	}

	catalogue := circuit.Catalogue()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes := make([]OperationOutcome, 0, len(catalogue))
			for i, op := range catalogue {
				if i < tt.successes {
					outcomes = append(outcomes, successfulOutcome(op, tt.strength, 1.0))
				} else {
					outcomes = append(outcomes, failedOutcome(op))
				}
			}

			report := Aggregate(outcomes)
			if len(report.Recommendations) != len(tt.want) {
				t.Fatalf("recommendations = %v, want %v", report.Recommendations, tt.want)
			}
			for i := range tt.want {
				if report.Recommendations[i] != tt.want[i] {
					t.Errorf("recommendation[%d] = %q, want %q", i, report.Recommendations[i], tt.want[i])
				}
			}
		})
	}
}

func TestAggregateIdempotent(t *testing.T) {
	outcomes := []OperationOutcome{
		successfulOutcome(circuit.OpStrategy, 0.7, 1.5),
		successfulOutcome(circuit.OpEndgameOptimization, 0.8, 2.5),
	}

	first := Aggregate(outcomes)
	second := Aggregate(outcomes)

	if first.Readiness != second.Readiness ||
		first.AverageEffectiveness != second.AverageEffectiveness ||
		len(first.Recommendations) != len(second.Recommendations) {
		t.Errorf("aggregation not stable: %+v vs %+v", first, second)
	}
}
