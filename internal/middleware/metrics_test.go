package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type recordedRequest struct {
	method     string
	statusCode int
	duration   time.Duration
}

type captureRecorder struct {
	requests []recordedRequest
}

func (c *captureRecorder) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.requests = append(c.requests, recordedRequest{method, statusCode, duration})
}

var _ HTTPMetricsRecorder = (*captureRecorder)(nil)

func TestMetricsMiddleware_RecordsMethodAndStatus(t *testing.T) {
	recorder := &captureRecorder{}
	mw := NewMetricsMiddleware(recorder)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/tasks/missing", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if len(recorder.requests) != 1 {
		t.Fatalf("recorded %d requests, want 1", len(recorder.requests))
	}
	got := recorder.requests[0]
	if got.method != http.MethodDelete {
		t.Errorf("method = %q, want %q", got.method, http.MethodDelete)
	}
	if got.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want %d", got.statusCode, http.StatusNotFound)
	}
}

func TestMetricsMiddleware_ImplicitStatusIs200(t *testing.T) {
	recorder := &captureRecorder{}
	mw := NewMetricsMiddleware(recorder)

	// WriteHeaderを呼ばずにボディのみ書き込むハンドラー
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if recorder.requests[0].statusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want %d", recorder.requests[0].statusCode, http.StatusOK)
	}
}
