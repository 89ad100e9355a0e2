// Package analysis turns raw measurement counts into chess effectiveness
// scores and aggregates per-operation scores into a suite readiness report.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"gambit/internal/qpu"
)

// ErrOperationFailed marks a result the backend reported as unsuccessful.
// Scoring is only defined over successful results.
var ErrOperationFailed = errors.New("quantum operation failed")

// intelligenceScale normalizes Shannon entropy into [0,1]. Four bits of
// entropy, the maximum a 4-qubit register can produce, maps to 1.0.
const intelligenceScale = 4.0

// Effectiveness is the per-operation score sheet derived from one result.
type Effectiveness struct {
	// Strength is the probability mass of the dominant outcome.
	Strength float64 `json:"chess_strength"`
	// OptimalStrategy is the dominant measured bitstring. Ties break toward
	// the lexicographically smallest bitstring so reports are stable.
	OptimalStrategy string `json:"optimal_strategy"`
	// Diversity is the number of distinct outcomes observed.
	Diversity int `json:"strategy_diversity"`
	// Intelligence is the normalized Shannon entropy of the distribution.
	Intelligence float64  `json:"quantum_intelligence"`
	Insights     []string `json:"chess_insights"`
}

// Analyze scores a single operation result. Failed results return
// ErrOperationFailed; a successful result with an empty histogram scores
// as an all-zero analysis rather than an error.
func Analyze(result *qpu.Result) (*Effectiveness, error) {
	if result == nil {
		return nil, fmt.Errorf("nil result: %w", ErrOperationFailed)
	}
	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = "backend reported failure"
		}
		return nil, fmt.Errorf("%s: %w", reason, ErrOperationFailed)
	}

	total := result.TotalShots()
	if total == 0 {
		// Degenerate histogram: no shots means nothing to rank, so every
		// score bottoms out at zero instead of propagating a fault.
		return &Effectiveness{Insights: Insights(result)}, nil
	}

	dominant, dominantCount := dominantOutcome(result.Counts)

	return &Effectiveness{
		Strength:        float64(dominantCount) / float64(total),
		OptimalStrategy: dominant,
		Diversity:       len(result.Counts),
		Intelligence:    intelligence(result.Counts),
		Insights:        Insights(result),
	}, nil
}

// dominantOutcome picks the most frequent bitstring, breaking count ties by
// lexicographic order so the same distribution always yields the same answer.
func dominantOutcome(counts map[string]int) (string, int) {
	var best string
	bestCount := -1
	for outcome, count := range counts {
		if count > bestCount || (count == bestCount && outcome < best) {
			best = outcome
			bestCount = count
		}
	}
	return best, bestCount
}

// intelligence computes the base-2 Shannon entropy of the outcome
// distribution, scaled by intelligenceScale and clamped to [0,1].
func intelligence(counts map[string]int) float64 {
	total := 0
	for _, count := range counts {
		total += count
	}
	if total == 0 {
		return 0.0
	}

	entropy := 0.0
	for _, count := range counts {
		if count <= 0 {
			continue
		}
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}

	return math.Min(1.0, entropy/intelligenceScale)
}
