package qpu

import (
	"context"
	"fmt"
	"sync"

	"gambit/internal/circuit"
)

// MockClient is a scripted backend for tests. Responses are keyed by the
// operation name stamped into job metadata; unscripted operations fall back
// to SubmitFunc when set, otherwise error.
type MockClient struct {
	SubmitFunc  func(ctx context.Context, job *circuit.Job) (*Result, error)
	DevicesFunc func(ctx context.Context) ([]Device, error)

	mu        sync.Mutex
	responses map[string]*Result
	failures  map[string]error
	submitted []*circuit.Job
}

func NewMockClient() *MockClient {
	return &MockClient{
		responses: make(map[string]*Result),
		failures:  make(map[string]error),
	}
}

// ScriptResult returns the given result whenever a job for operation is
// submitted.
func (m *MockClient) ScriptResult(operation string, result *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[operation] = result
}

// ScriptError makes submission for operation return err.
func (m *MockClient) ScriptError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[operation] = err
}

// Submitted returns jobs in submission order.
func (m *MockClient) Submitted() []*circuit.Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*circuit.Job, len(m.submitted))
	copy(out, m.submitted)
	return out
}

func (m *MockClient) Submit(ctx context.Context, job *circuit.Job) (*Result, error) {
	m.mu.Lock()
	m.submitted = append(m.submitted, job)
	operation, _ := job.Metadata["operation"].(string)
	scriptedErr, hasErr := m.failures[operation]
	scripted, hasResult := m.responses[operation]
	m.mu.Unlock()

	if hasErr {
		return nil, scriptedErr
	}
	if hasResult {
		return scripted, nil
	}
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, job)
	}
	return nil, fmt.Errorf("no scripted response for operation %q", operation)
}

func (m *MockClient) Devices(ctx context.Context) ([]Device, error) {
	if m.DevicesFunc != nil {
		return m.DevicesFunc(ctx)
	}
	return nil, nil
}
