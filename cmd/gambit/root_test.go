package main

import (
	"bytes"
	"strings"
	"testing"

	"gambit/internal/config"
	"gambit/internal/observability"
	"gambit/internal/qpu"
)

func bufferedLogger(buf *bytes.Buffer) *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:  "debug",
		Format: "text",
		Output: buf,
	})
}

func TestSlogAdapterForwardsFormattedMessages(t *testing.T) {
	var buf bytes.Buffer
	adapter := slogAdapter{logger: bufferedLogger(&buf)}

	adapter.Info("submitted job %s with %d shots", "job-7", 100)

	if got := buf.String(); !strings.Contains(got, "submitted job job-7 with 100 shots") {
		t.Fatalf("formatted message missing from output: %q", got)
	}
}

func TestBuildBackendMasksAPIKeyInLogs(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendHTTP
	cfg.QPU.APIKey = "qbraid-1234567890abcdef"

	var buf bytes.Buffer
	client, err := buildBackend(cfg, bufferedLogger(&buf))
	if err != nil {
		t.Fatalf("buildBackend: %v", err)
	}
	if _, ok := client.(*qpu.HTTPClient); !ok {
		t.Fatalf("expected *qpu.HTTPClient, got %T", client)
	}

	logged := buf.String()
	if strings.Contains(logged, "qbraid-1234567890abcdef") {
		t.Fatalf("full API key leaked into logs: %q", logged)
	}
	if !strings.Contains(logged, "qbraid-1...cdef") {
		t.Fatalf("masked API key missing from logs: %q", logged)
	}
}

func TestBuildBackendRejectsUnknownKind(t *testing.T) {
	cfg := config.Default()
	cfg.Backend = config.BackendKind("carrier-pigeon")

	if _, err := buildBackend(cfg, bufferedLogger(&bytes.Buffer{})); err == nil {
		t.Fatal("expected error for unknown backend kind")
	}
}
