package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		wantStatus  int
		wantOrigin  string
		wantVary    bool
		wantExposed bool
	}{
		{name: "configured origin", allowed: []string{"https://fixtures.example.com"}, method: http.MethodPost, origin: "https://fixtures.example.com", wantStatus: http.StatusOK, wantOrigin: "https://fixtures.example.com", wantVary: true, wantExposed: true},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "https://fixtures.example.com", wantStatus: http.StatusNoContent, wantOrigin: "*", wantExposed: true},
		{name: "unconfigured origin", allowed: []string{"https://allowed.example.com"}, method: http.MethodPost, origin: "https://other.example.com", wantStatus: http.StatusOK},
		{name: "same origin request", allowed: []string{"*"}, method: http.MethodPost, wantStatus: http.StatusOK},
		{name: "blank entries ignored", allowed: []string{" ", ""}, method: http.MethodPost, origin: "https://fixtures.example.com", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			req := httptest.NewRequest(tt.method, "/api/scrape", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("unexpected Vary header: %q", rec.Header().Get("Vary"))
			}
			if got := rec.Header().Get("Access-Control-Expose-Headers") == requestIDHeader; got != tt.wantExposed {
				t.Fatalf("unexpected Access-Control-Expose-Headers: %q", rec.Header().Get("Access-Control-Expose-Headers"))
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	tests := map[string]bool{
		"/healthz":    false,
		" /healthz ":  false,
		"/livez":      false,
		"/readyz":     false,
		"/metrics":    false,
		"/api/scrape": true,
		"/":           true,
		"/script.js":  true,
		"/docs":       true,
	}
	for path, want := range tests {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q)=%v want=%v", path, got, want)
		}
	}
}
