package httpclient

import (
	"net/http"
	"time"

	"gambit/internal/logging"
)

// New returns an http.Client configured for outbound quantum-backend requests.
func New(timeout time.Duration, logger logging.Logger) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: Transport(logger),
	}
}

// Transport returns an http.Transport clone suitable for outbound calls.
// It respects HTTP(S)_PROXY/ALL_PROXY/NO_PROXY via the default proxy policy.
func Transport(logger logging.Logger) http.RoundTripper {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return &loggingRoundTripper{base: http.DefaultTransport, logger: logging.OrNop(logger)}
	}

	transport := base.Clone()
	transport.Proxy = http.ProxyFromEnvironment
	return &loggingRoundTripper{base: transport, logger: logging.OrNop(logger)}
}

type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logging.Logger
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)
	if err != nil {
		t.logger.Debug("%s %s failed after %v: %v", req.Method, req.URL.Path, elapsed, err)
		return nil, err
	}
	t.logger.Debug("%s %s -> %d (%v)", req.Method, req.URL.Path, resp.StatusCode, elapsed)
	return resp, nil
}
