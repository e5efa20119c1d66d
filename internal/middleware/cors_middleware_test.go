package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(allowedOrigins string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return CORSMiddleware(allowedOrigins, "GET,POST", "Content-Type")(next)
}

func TestCORSMiddleware_ReflectsAllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	req.Header.Set("Origin", "http://app.example.com")
	rec := httptest.NewRecorder()

	corsHandler("http://app.example.com, http://other.example.com").ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.example.com" {
		t.Errorf("expected origin reflected, got %q", got)
	}
}

func TestCORSMiddleware_RejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notes", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()

	corsHandler("http://app.example.com").ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no allow-origin header, got %q", got)
	}
}

func TestCORSMiddleware_WildcardAndPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/notes", nil)
	req.Header.Set("Origin", "http://anywhere.example.com")
	rec := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	CORSMiddleware("*", "GET,POST", "Content-Type")(next).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anywhere.example.com" {
		t.Errorf("expected wildcard to reflect origin, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the handler chain")
	}
}
