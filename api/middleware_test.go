package api

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"podcatalog/internal/requestid"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	h := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.Get(r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid request id, got %q", seen)
	}
	if rec.Header().Get(requestid.Header) != seen {
		t.Fatalf("expected response header %q, got %q", seen, rec.Header().Get(requestid.Header))
	}
}

func TestRequestIDMiddleware_ReusesInbound(t *testing.T) {
	var seen string
	h := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.Get(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "abc-123" {
		t.Fatalf("expected inbound id, got %q", seen)
	}

	req.Header.Set(requestid.Header, strings.Repeat("x", 200))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == strings.Repeat("x", 200) {
		t.Fatal("oversized inbound id should be replaced")
	}
}

func TestAccessLogMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	h := AccessLogMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/genres", nil))
	line := buf.String()
	if !strings.Contains(line, "[http] GET /api/genres 418 15B") {
		t.Fatalf("unexpected access log line %q", line)
	}

	buf.Reset()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	if buf.Len() != 0 {
		t.Fatalf("health checks should not be logged, got %q", buf.String())
	}
}
