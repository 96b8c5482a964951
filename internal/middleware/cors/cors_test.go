package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newHandler(origin string) http.Handler {
	return Middleware(Config{AllowedOrigin: origin})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
}

func TestAllowsConfiguredOrigin(t *testing.T) {
	handler := newHandler("https://wallet.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/u1", nil)
	req.Header.Set("Origin", "https://wallet.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://wallet.example.com" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestIgnoresOtherOrigins(t *testing.T) {
	handler := newHandler("https://wallet.example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/u1", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin header, got %q", got)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("non-matching origin should not block the request, got %d", rr.Code)
	}
}

func TestWildcardOrigin(t *testing.T) {
	handler := newHandler("*")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin = %q, want *", got)
	}
}

func TestPreflight(t *testing.T) {
	handler := newHandler("https://wallet.example.com")

	req := httptest.NewRequest(http.MethodOptions, "/api/transactions", nil)
	req.Header.Set("Origin", "https://wallet.example.com")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatal("expected allow-methods on preflight")
	}
}
