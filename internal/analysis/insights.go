package analysis

import "gambit/internal/qpu"

// Insight narrative thresholds.
const (
	// fastAnalysisSeconds is the execution time under which a run counts
	// as fast enough for interactive play.
	fastAnalysisSeconds = 30.0
	// highDiversityOutcomes is the distinct-outcome count above which the
	// distribution signals broad strategic coverage.
	highDiversityOutcomes = 8
)

// insightRule emits a narrative line when its condition holds. Rules fire in
// declaration order so the insight list is deterministic.
type insightRule struct {
	applies func(*qpu.Result) bool
	text    string
}

var successInsights = []insightRule{
	{
		applies: func(*qpu.Result) bool { return true },
		text:    "Quantum chess strategy achieved",
	},
	{
		applies: func(*qpu.Result) bool { return true },
		text:    "Move evaluation quantum-enhanced",
	},
	{
		applies: func(r *qpu.Result) bool { return r.ExecutionTime < fastAnalysisSeconds },
		text:    "Fast chess analysis achieved",
	},
	{
		applies: func(r *qpu.Result) bool { return len(r.Counts) > highDiversityOutcomes },
		text:    "High strategy diversity - excellent play potential",
	},
}

// Insights builds the narrative tags for a result. A failed result yields
// the single classical-fallback recommendation.
func Insights(result *qpu.Result) []string {
	if result == nil || !result.Success {
		return []string{"Fallback to classical chess algorithms recommended"}
	}

	insights := make([]string, 0, len(successInsights))
	for _, rule := range successInsights {
		if rule.applies(result) {
			insights = append(insights, rule.text)
		}
	}
	return insights
}
