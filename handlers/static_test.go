package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func newTestDist(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/index.html":           "<!doctype html><div id=\"root\"></div>",
		"/assets/index-4f2a.js": "console.log('app')",
		"/favicon.svg":          "<svg></svg>",
	}
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return fs
}

func TestStaticHandler_ServesAssetsWithLongCache(t *testing.T) {
	h := NewStaticHandler(newTestDist(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/index-4f2a.js", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "console.log('app')" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=31536000" {
		t.Errorf("unexpected Cache-Control %q", got)
	}
}

func TestStaticHandler_ServesRootFile(t *testing.T) {
	h := NewStaticHandler(newTestDist(t))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "image/svg+xml") {
		t.Errorf("unexpected Content-Type %q", got)
	}
	if rec.Header().Get("Cache-Control") != "" {
		t.Errorf("non-hashed files should not get a long cache header")
	}
}

func TestStaticHandler_FallsBackToIndex(t *testing.T) {
	h := NewStaticHandler(newTestDist(t))

	for _, p := range []string{"/", "/index.html", "/podcasts/10716", "/assets/", "/../../etc/passwd"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", p, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `<div id="root">`) {
			t.Errorf("%s: expected index.html, got %q", p, rec.Body.String())
		}
		if rec.Header().Get("Cache-Control") != "no-cache" {
			t.Errorf("%s: expected no-cache on index", p)
		}
	}
}

func TestStaticHandler_MissingBuild(t *testing.T) {
	h := NewStaticHandler(afero.NewMemMapFs())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStaticHandler_RejectsWrites(t *testing.T) {
	h := NewStaticHandler(newTestDist(t))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
