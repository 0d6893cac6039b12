package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	app "github.com/mohammadpnp/candidate-onboarding/internal/application/onboarding"
	"github.com/mohammadpnp/candidate-onboarding/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPServerHealthAndRequestLog(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	server := NewHTTPServer(Services{}, &config.Config{BodyLimit: "1K"}, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	requestID := rec.Header().Get("X-Request-Id")
	if len(requestID) != 27 {
		t.Fatalf("expected a ksuid request id, got %q", requestID)
	}

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request log, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["request_id"]; got != requestID {
		t.Fatalf("unexpected logged request id: %#v", got)
	}
}

func TestHTTPServerBodyLimit(t *testing.T) {
	t.Parallel()

	server := NewHTTPServer(Services{}, &config.Config{BodyLimit: "1K"}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch-jobs", strings.NewReader(strings.Repeat("a", 4096)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

type failingGetBatchJob struct{}

func (failingGetBatchJob) Execute(context.Context, app.GetBatchJobInput) (app.BatchJobOutput, error) {
	return app.BatchJobOutput{}, errors.New("connection reset")
}

func TestHTTPServerLogsUnexpectedErrors(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	server := NewHTTPServer(Services{GetBatchJob: failingGetBatchJob{}}, &config.Config{BodyLimit: "1K"}, zap.New(core))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch-jobs/6f1c2b9e-3a4d-4e5f-8a7b-9c0d1e2f3a4b", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	if body.Error.Code != "internal_error" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}

	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one failed request log, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if got, _ := ctx["error"].(string); !strings.Contains(got, "connection reset") {
		t.Fatalf("expected logged cause, got %#v", ctx["error"])
	}
	if got := ctx["status"]; got != int64(http.StatusInternalServerError) {
		t.Fatalf("expected logged status 500, got %#v", got)
	}
}
