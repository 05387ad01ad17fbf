package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	const apiKey = "secret-key"

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{"valid key", apiKey, "/api/v1/creators", http.StatusOK},
		{"wrong key", "wrong-key", "/api/v1/creators", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/posts", http.StatusUnauthorized},
		{"key prefix only", "secret", "/api/v1/posts", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"swagger is public", "", "/swagger/index.html", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_CountsFailuresPerIP(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := AuthMiddleware("k", nil, detector)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tiers", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.failedAuthByIP["10.1.1.1"])
}

func TestRateLimitMiddleware(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := RateLimitMiddleware(nil, detector)(okHandler())

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < RequestsPerWindowLimit; i++ {
		if code := send("192.168.1.100:1234"); code != http.StatusOK {
			t.Fatalf("request %d failed with status %d", i, code)
		}
	}

	assert.Equal(t, http.StatusTooManyRequests, send("192.168.1.100:1234"))
	assert.Equal(t, http.StatusOK, send("192.168.1.101:1234"), "budget is per IP")
}

func TestExtractIP(t *testing.T) {
	proxies := []string{"10.0.0.1"}

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"direct client", "203.0.113.7:443", "", "203.0.113.7"},
		{"untrusted forwarder is ignored", "203.0.113.7:443", "1.2.3.4", "203.0.113.7"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:80", "1.2.3.4, 198.51.100.2", "198.51.100.2"},
		{"trusted proxy without header", "10.0.0.1:80", "", "10.0.0.1"},
		{"address without port", "203.0.113.9", "", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, proxies))
		})
	}
}
