package qpu

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"gambit/internal/circuit"
	"gambit/internal/logging"
)

// Simulator is an in-process backend used when no API key is configured and
// in tests. Sampling is deterministic for a given seed and program, so suite
// runs against the simulator are reproducible.
type Simulator struct {
	seed        int64
	failureRate float64
	logger      logging.Logger

	mu      sync.Mutex
	nextJob int
}

// NewSimulator builds a deterministic local backend. failureRate in [0,1]
// injects failed results for fault-path testing; 0 disables injection.
func NewSimulator(seed int64, failureRate float64, logger logging.Logger) *Simulator {
	if failureRate < 0 {
		failureRate = 0
	}
	if failureRate > 1 {
		failureRate = 1
	}
	return &Simulator{
		seed:        seed,
		failureRate: failureRate,
		logger:      logging.OrNop(logger),
	}
}

// Submit samples the measurement distribution locally.
func (s *Simulator) Submit(ctx context.Context, job *circuit.Job) (*Result, error) {
	if job == nil {
		return nil, fmt.Errorf("nil job")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	width, err := programWidth(job.Program)
	if err != nil {
		return nil, err
	}
	shots := job.Shots
	if shots <= 0 {
		shots = 1
	}

	jobID := s.allocateJobID()
	rng := rand.New(rand.NewSource(s.seed ^ int64(programFingerprint(job.Program))))

	if s.failureRate > 0 && rng.Float64() < s.failureRate {
		s.logger.Debug("Simulated backend failure for job %s", jobID)
		return Failed(jobID, string(job.Device), "simulated backend failure"), nil
	}

	start := time.Now()
	counts := sampleCounts(rng, width, shots)
	elapsed := time.Since(start).Seconds()

	s.logger.Debug("Simulated job %s: %d shots over %d outcomes", jobID, shots, len(counts))
	return &Result{
		JobID:         jobID,
		Device:        string(job.Device),
		Success:       true,
		Counts:        counts,
		ExecutionTime: elapsed,
	}, nil
}

// Devices reports the single simulated target.
func (s *Simulator) Devices(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Device{{
		ID:       "gambit-local-simulator",
		Name:     "Local statevector simulator",
		Provider: "gambit",
		Status:   "ONLINE",
		Qubits:   32,
	}}, nil
}

func (s *Simulator) allocateJobID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJob++
	return fmt.Sprintf("sim-%06d", s.nextJob)
}

// sampleCounts draws shots from a rough superposition: a handful of basis
// states carry most of the weight, the rest share a uniform tail. This gives
// the analysis pipeline realistic non-uniform distributions to score.
func sampleCounts(rng *rand.Rand, width, shots int) map[string]int {
	space := 1 << width
	dominant := rng.Intn(space)
	secondary := (dominant + 1 + rng.Intn(space-1)) % space

	counts := make(map[string]int)
	for i := 0; i < shots; i++ {
		roll := rng.Float64()
		var outcome int
		switch {
		case roll < 0.45:
			outcome = dominant
		case roll < 0.70:
			outcome = secondary
		default:
			outcome = rng.Intn(space)
		}
		counts[bitstring(outcome, width)]++
	}
	return counts
}

func bitstring(value, width int) string {
	raw := strconv.FormatInt(int64(value), 2)
	if len(raw) < width {
		raw = strings.Repeat("0", width-len(raw)) + raw
	}
	return raw
}

// programWidth reads the qubit register width out of an OpenQASM 3 program.
func programWidth(program string) (int, error) {
	for _, line := range strings.Split(program, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "qubit[") {
			continue
		}
		end := strings.Index(line, "]")
		if end <= len("qubit[") {
			break
		}
		width, err := strconv.Atoi(line[len("qubit["):end])
		if err != nil || width <= 0 {
			break
		}
		return width, nil
	}
	return 0, fmt.Errorf("program declares no qubit register")
}

func programFingerprint(program string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(program))
	return h.Sum32()
}
