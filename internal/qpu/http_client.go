package qpu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"gambit/internal/circuit"
	gambiterrors "gambit/internal/errors"
	"gambit/internal/httpclient"
	"gambit/internal/logging"
)

const (
	deviceCacheSize = 8
	deviceCacheTTL  = 5 * time.Minute
	deviceCacheKey  = "devices"
)

// HTTPClient talks to a qBraid-style REST backend.
//
// Job lifecycle: POST /quantum-jobs returns a job id, then the client polls
// GET /quantum-jobs/{id} until the job reaches a terminal status. Backend
// failures surface as a Result with Success=false when the job itself failed,
// or as an error when the transport or protocol did.
type HTTPClient struct {
	config     Config
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger

	deviceCache *lru.Cache[string, deviceCacheEntry]
}

type deviceCacheEntry struct {
	devices  []Device
	storedAt time.Time
}

// NewHTTPClient builds a REST backend client guarded by a circuit breaker.
func NewHTTPClient(config Config, logger logging.Logger) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	logger = logging.OrNop(logger)

	cache, err := lru.New[string, deviceCacheEntry](deviceCacheSize)
	if err != nil {
		// lru.New only errors on non-positive size which is constant above.
		return nil, err
	}

	return &HTTPClient{
		config:      config,
		baseURL:     baseURL,
		httpClient:  httpclient.NewWithCircuitBreaker(timeout, logger, "quantum-backend"),
		logger:      logger,
		deviceCache: cache,
	}, nil
}

type submitRequest struct {
	Device   string         `json:"device"`
	Program  string         `json:"program"`
	Format   string         `json:"format"`
	Shots    int            `json:"shots"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type jobStatusResponse struct {
	ID            string         `json:"id"`
	Status        string         `json:"status"`
	Device        string         `json:"device"`
	Counts        map[string]int `json:"counts"`
	ExecutionTime float64        `json:"execution_time"`
	Error         string         `json:"error"`
}

// Submit sends the job and polls until it reaches a terminal status.
func (c *HTTPClient) Submit(ctx context.Context, job *circuit.Job) (*Result, error) {
	if job == nil {
		return nil, fmt.Errorf("nil job")
	}

	body, err := json.Marshal(submitRequest{
		Device:   string(job.Device),
		Program:  job.Program,
		Format:   "qasm3",
		Shots:    job.Shots,
		Metadata: job.Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}

	retryConfig := gambiterrors.DefaultRetryConfig()
	if c.config.MaxRetries > 0 {
		retryConfig.MaxAttempts = c.config.MaxRetries
	}

	status, err := gambiterrors.RetryWithResultAndLog(ctx, retryConfig, func(ctx context.Context) (*jobStatusResponse, error) {
		return c.postJob(ctx, body)
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("submit job: %w", err)
	}

	c.logger.Debug("Job %s accepted with status %s", status.ID, status.Status)

	final, err := c.awaitTerminal(ctx, status)
	if err != nil {
		return nil, err
	}
	return c.toResult(final)
}

// Devices lists backend execution targets, serving repeated calls from a
// small TTL cache.
func (c *HTTPClient) Devices(ctx context.Context) ([]Device, error) {
	if entry, ok := c.deviceCache.Get(deviceCacheKey); ok {
		if time.Since(entry.storedAt) < deviceCacheTTL {
			c.logger.Debug("Device catalogue served from cache (%d devices)", len(entry.devices))
			return entry.devices, nil
		}
		c.deviceCache.Remove(deviceCacheKey)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/quantum-devices", nil)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	var devices []Device
	if err := json.Unmarshal(resp, &devices); err != nil {
		return nil, fmt.Errorf("decode device list: %w", err)
	}

	c.deviceCache.Add(deviceCacheKey, deviceCacheEntry{devices: devices, storedAt: time.Now()})
	return devices, nil
}

func (c *HTTPClient) postJob(ctx context.Context, body []byte) (*jobStatusResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/quantum-jobs", body)
	if err != nil {
		return nil, err
	}

	var status jobStatusResponse
	if err := json.Unmarshal(resp, &status); err != nil {
		return nil, fmt.Errorf("decode job response: %w", err)
	}
	if status.ID == "" {
		return nil, gambiterrors.NewPermanentError(fmt.Errorf("backend returned no job id"), "")
	}
	return &status, nil
}

// awaitTerminal polls the job until the backend reports a terminal status.
func (c *HTTPClient) awaitTerminal(ctx context.Context, status *jobStatusResponse) (*jobStatusResponse, error) {
	interval := time.Duration(c.config.PollIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	current := status
	for !isTerminalStatus(current.Status) {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("await job %s: %w", status.ID, ctx.Err())
		case <-time.After(interval):
		}

		resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/quantum-jobs/"+status.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("poll job %s: %w", status.ID, err)
		}

		var polled jobStatusResponse
		if err := json.Unmarshal(resp, &polled); err != nil {
			return nil, fmt.Errorf("decode poll response: %w", err)
		}
		current = &polled
	}

	return current, nil
}

func (c *HTTPClient) toResult(status *jobStatusResponse) (*Result, error) {
	result := &Result{
		JobID:         status.ID,
		Device:        status.Device,
		Success:       strings.EqualFold(status.Status, "COMPLETED"),
		Counts:        status.Counts,
		ExecutionTime: status.ExecutionTime,
		Error:         status.Error,
	}
	if !result.Success && result.Error == "" {
		result.Error = fmt.Sprintf("job ended with status %s", status.Status)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid result for job %s: %w", status.ID, err)
	}
	return result, nil
}

func (c *HTTPClient) doRequest(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := httpclient.ReadAllWithLimit(resp.Body, c.config.MaxResponseBytes)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cause := fmt.Errorf("backend status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
		return nil, gambiterrors.ClassifyHTTPStatus(cause, resp.StatusCode, parseRetryAfter(resp.Header))
	}

	return payload, nil
}

func parseRetryAfter(header http.Header) int {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

func isTerminalStatus(status string) bool {
	switch strings.ToUpper(status) {
	case "COMPLETED", "FAILED", "CANCELLED":
		return true
	}
	return false
}
