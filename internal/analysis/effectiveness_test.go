package analysis

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"gambit/internal/qpu"
)

func successResult(counts map[string]int, executionTime float64) *qpu.Result {
	return &qpu.Result{
		JobID:         "job-test",
		Device:        "quantum_simulator",
		Success:       true,
		Counts:        counts,
		ExecutionTime: executionTime,
	}
}

func TestAnalyzeTwoOutcomeDistribution(t *testing.T) {
	result := successResult(map[string]int{"0110": 70, "1001": 30}, 1.2)

	analysis, err := Analyze(result)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if analysis.Strength != 0.7 {
		t.Errorf("strength = %v, want 0.7", analysis.Strength)
	}
	if analysis.OptimalStrategy != "0110" {
		t.Errorf("optimal strategy = %q, want 0110", analysis.OptimalStrategy)
	}
	if analysis.Diversity != 2 {
		t.Errorf("diversity = %d, want 2", analysis.Diversity)
	}

	wantEntropy := -(0.7*math.Log2(0.7) + 0.3*math.Log2(0.3))
	if got, want := analysis.Intelligence, wantEntropy/4.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("intelligence = %v, want %v", got, want)
	}
}

func TestAnalyzeTieBreaksLexicographically(t *testing.T) {
	result := successResult(map[string]int{"1100": 50, "0011": 50}, 1.0)

	// Map iteration order varies; repeat to catch order dependence.
	for i := 0; i < 20; i++ {
		analysis, err := Analyze(result)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if analysis.OptimalStrategy != "0011" {
			t.Fatalf("optimal strategy = %q, want lexicographically smallest 0011", analysis.OptimalStrategy)
		}
	}
}

func TestAnalyzeSingleOutcomeHasZeroIntelligence(t *testing.T) {
	analysis, err := Analyze(successResult(map[string]int{"000": 100}, 0.1))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Strength != 1.0 {
		t.Errorf("strength = %v, want 1.0", analysis.Strength)
	}
	if analysis.Intelligence != 0.0 {
		t.Errorf("intelligence = %v, want 0.0", analysis.Intelligence)
	}
}

func TestAnalyzeIntelligenceClampedAtOne(t *testing.T) {
	// 32 equally likely outcomes carry 5 bits of entropy, above the scale.
	counts := make(map[string]int, 32)
	for i := 0; i < 32; i++ {
		counts[fmt.Sprintf("%05b", i)] = 10
	}

	analysis, err := Analyze(successResult(counts, 1.0))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Intelligence != 1.0 {
		t.Errorf("intelligence = %v, want clamp at 1.0", analysis.Intelligence)
	}
}

func TestAnalyzeFailedResult(t *testing.T) {
	_, err := Analyze(qpu.Failed("job-x", "quantum_simulator", "device offline"))
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("err = %v, want ErrOperationFailed", err)
	}
}

func TestAnalyzeEmptyCountsScoresZero(t *testing.T) {
	for name, counts := range map[string]map[string]int{
		"empty": {},
		"nil":   nil,
	} {
		analysis, err := Analyze(successResult(counts, 1.0))
		if err != nil {
			t.Fatalf("%s counts: unexpected error: %v", name, err)
		}
		if analysis.Strength != 0 || analysis.OptimalStrategy != "" {
			t.Fatalf("%s counts: strength = %f, strategy = %q, want zero values",
				name, analysis.Strength, analysis.OptimalStrategy)
		}
		if analysis.Diversity != 0 || analysis.Intelligence != 0.0 {
			t.Fatalf("%s counts: diversity = %d, intelligence = %f, want zeros",
				name, analysis.Diversity, analysis.Intelligence)
		}
	}
}

func TestInsightsOrderingAndThresholds(t *testing.T) {
	tests := []struct {
		name   string
		result *qpu.Result
		want   []string
	}{
		{
			name:   "fast low diversity",
			result: successResult(map[string]int{"00": 60, "11": 40}, 5.0),
			want: []string{
				"Quantum chess strategy achieved",
				"Move evaluation quantum-enhanced",
				"Fast chess analysis achieved",
			},
		},
		{
			name:   "slow run drops speed tag",
			result: successResult(map[string]int{"00": 60, "11": 40}, 45.0),
			want: []string{
				"Quantum chess strategy achieved",
				"Move evaluation quantum-enhanced",
			},
		},
		{
			name: "high diversity",
			result: successResult(map[string]int{
				"0000": 10, "0001": 10, "0010": 10, "0011": 10, "0100": 10,
				"0101": 10, "0110": 10, "0111": 10, "1000": 20,
			}, 2.0),
			want: []string{
				"Quantum chess strategy achieved",
				"Move evaluation quantum-enhanced",
				"Fast chess analysis achieved",
				"High strategy diversity - excellent play potential",
			},
		},
		{
			name:   "exactly eight outcomes is not high diversity",
			result: successResult(map[string]int{"000": 10, "001": 10, "010": 10, "011": 10, "100": 10, "101": 10, "110": 10, "111": 30}, 2.0),
			want: []string{
				"Quantum chess strategy achieved",
				"Move evaluation quantum-enhanced",
				"Fast chess analysis achieved",
			},
		},
		{
			name:   "failure",
			result: qpu.Failed("job-x", "quantum_simulator", "boom"),
			want:   []string{"Fallback to classical chess algorithms recommended"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Insights(tt.result)
			if len(got) != len(tt.want) {
				t.Fatalf("insights = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("insight[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
