package qpu

import (
	"fmt"
)

// Result is the record a backend returns for one job. It is treated as
// immutable input by the reduction pipeline.
type Result struct {
	JobID         string         `json:"job_id"`
	Device        string         `json:"device"`
	Success       bool           `json:"success"`
	Counts        map[string]int `json:"counts"`
	ExecutionTime float64        `json:"execution_time"` // seconds
	Error         string         `json:"error,omitempty"`
}

// TotalShots sums the outcome counts. Zero for an empty histogram.
func (r *Result) TotalShots() int {
	total := 0
	for _, count := range r.Counts {
		total += count
	}
	return total
}

// Failed builds a failure result carrying the backend's error text.
func Failed(jobID, device, reason string) *Result {
	return &Result{
		JobID:   jobID,
		Device:  device,
		Success: false,
		Error:   reason,
	}
}

// Validate rejects result records a well-behaved backend cannot produce.
// It runs at the decode boundary so malformed remote payloads never reach
// the reduction pipeline.
func (r *Result) Validate() error {
	if r.ExecutionTime < 0 {
		return fmt.Errorf("negative execution time %f", r.ExecutionTime)
	}
	for outcome, count := range r.Counts {
		if count < 0 {
			return fmt.Errorf("negative count %d for outcome %q", count, outcome)
		}
	}
	return nil
}
