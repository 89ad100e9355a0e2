package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gambiterrors "gambit/internal/errors"
	"gambit/internal/logging"
)

func TestCircuitBreakerTransportOpensOnServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWithCircuitBreakerConfig(time.Second, logging.Nop(), "test", gambiterrors.CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})

	for i := 0; i < 2; i++ {
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatalf("request %d failed at transport level: %v", i, err)
		}
		resp.Body.Close()
	}

	// Third request must be rejected by the open breaker before reaching the server.
	if _, err := client.Get(server.URL); err == nil {
		t.Fatal("expected breaker rejection")
	}
}

func TestCircuitBreakerTransportPassesSuccesses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewWithCircuitBreaker(time.Second, logging.Nop(), "test")
	for i := 0; i < 5; i++ {
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatalf("request %d rejected: %v", i, err)
		}
		resp.Body.Close()
	}
}

func TestReadAllWithLimit(t *testing.T) {
	payload := "ok-payload"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if _, err := ReadAllWithLimit(resp.Body, 3); !IsResponseTooLarge(err) {
		t.Fatalf("expected ResponseTooLargeError, got %v", err)
	}
}
