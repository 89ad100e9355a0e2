package analysis

import (
	"gambit/internal/circuit"
	"gambit/internal/qpu"
)

// ReadinessTier classifies suite-level success volume. Tiers are cut on
// absolute successful-operation counts, not on the success rate.
type ReadinessTier string

const (
	ReadinessGrandmaster ReadinessTier = "GRANDMASTER"
	ReadinessMaster      ReadinessTier = "MASTER"
	ReadinessDeveloping  ReadinessTier = "DEVELOPING"
)

// StatusNoSuccessfulOperations is the canonical "no data" report status. A
// suite where every operation failed is not a fault, it just has nothing to
// aggregate.
const StatusNoSuccessfulOperations = "no_successful_operations"

// Readiness thresholds and recommendation gates.
const (
	grandmasterSuccessCount = 4
	masterSuccessCount      = 2

	tournamentSuccessRate    = 0.8
	advancedSuccessRate      = 0.6
	grandmasterEffectiveness = 0.7
)

// OperationOutcome pairs one operation with whatever the run produced for
// it. Exactly one of (Analysis, Err) is set when the backend was reached;
// Err alone is set when submission itself failed.
type OperationOutcome struct {
	Operation circuit.Operation
	Result    *qpu.Result
	Analysis  *Effectiveness
	Err       error
}

// Succeeded reports whether the outcome carries a scored successful result.
func (o OperationOutcome) Succeeded() bool {
	return o.Err == nil && o.Result != nil && o.Result.Success && o.Analysis != nil
}

// SuiteReport is the cross-operation performance summary for one run.
type SuiteReport struct {
	Status               string        `json:"status,omitempty"`
	TotalOperations      int           `json:"total_chess_operations"`
	SuccessfulOperations int           `json:"successful_operations"`
	SuccessRate          float64       `json:"success_rate"`
	TotalExecutionTime   float64       `json:"total_execution_time"`
	AverageExecutionTime float64       `json:"average_execution_time"`
	AverageEffectiveness float64       `json:"average_chess_strength"`
	Readiness            ReadinessTier `json:"chess_quantum_readiness"`
	Recommendations      []string      `json:"recommendations"`
}

// recommendationRule appends its text when the report clears its gate.
// Rules fire in declaration order; the two success-rate tiers exclude each
// other, the effectiveness gate fires independently.
type recommendationRule struct {
	applies func(SuiteReport) bool
	text    string
}

var recommendationRules = []recommendationRule{
	{
		applies: func(r SuiteReport) bool { return r.SuccessRate >= tournamentSuccessRate },
		text:    "Chess AI ready for quantum-enhanced tournament play",
	},
	{
		applies: func(r SuiteReport) bool {
			return r.SuccessRate < tournamentSuccessRate && r.SuccessRate >= advancedSuccessRate
		},
		text: "Chess AI ready for advanced quantum strategy",
	},
	{
		applies: func(r SuiteReport) bool { return r.AverageEffectiveness >= grandmasterEffectiveness },
		text:    "Grandmaster-level chess intelligence achieved",
	},
}

// Aggregate reduces a batch of operation outcomes into the suite report.
// The batch is typically the five catalogue operations in declaration order,
// but any batch aggregates the same way.
func Aggregate(outcomes []OperationOutcome) SuiteReport {
	successful := make([]OperationOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			successful = append(successful, outcome)
		}
	}

	if len(successful) == 0 {
		return SuiteReport{
			Status:          StatusNoSuccessfulOperations,
			TotalOperations: len(outcomes),
			Readiness:       ReadinessDeveloping,
			Recommendations: []string{},
		}
	}

	totalTime := 0.0
	totalStrength := 0.0
	for _, outcome := range successful {
		totalTime += outcome.Result.ExecutionTime
		totalStrength += outcome.Analysis.Strength
	}

	report := SuiteReport{
		TotalOperations:      len(outcomes),
		SuccessfulOperations: len(successful),
		SuccessRate:          float64(len(successful)) / float64(len(outcomes)),
		TotalExecutionTime:   totalTime,
		AverageExecutionTime: totalTime / float64(len(successful)),
		AverageEffectiveness: totalStrength / float64(len(successful)),
		Readiness:            readinessFor(len(successful)),
		Recommendations:      []string{},
	}

	for _, rule := range recommendationRules {
		if rule.applies(report) {
			report.Recommendations = append(report.Recommendations, rule.text)
		}
	}

	return report
}

func readinessFor(successful int) ReadinessTier {
	switch {
	case successful >= grandmasterSuccessCount:
		return ReadinessGrandmaster
	case successful >= masterSuccessCount:
		return ReadinessMaster
	default:
		return ReadinessDeveloping
	}
}
