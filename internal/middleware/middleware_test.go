// AngelaMos | 2026
// middleware_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/carterperez-dev/voice-to-ppt/internal/config"
	"github.com/carterperez-dev/voice-to-ppt/internal/core"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAppUserID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"absent", "", ""},
		{"trimmed", "  rc-user-1 ", "rc-user-1"},
		{"too long", strings.Repeat("x", maxUserIDLength+1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := AppUserID("X-RC-App-User-ID")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = GetUserID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-RC-App-User-ID", tt.header)
			}
			serve(h, req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireBearer(t *testing.T) {
	h := RequireBearer("token-123")(ok)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic token-123", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer token-123", http.StatusOK},
		{"case insensitive scheme", "bearer token-123", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, serve(h, req).Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = serve(h, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", maxRequestIDLen+1))
	serve(h, req)
	assert.NotEqual(t, strings.Repeat("a", maxRequestIDLen+1), seen)
}

func TestRealIP(t *testing.T) {
	proxies, err := core.ParseTrustedProxies([]string{"10.0.0.0/8"})
	require.NoError(t, err)

	var seen string
	capture := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = core.ClientIP(r)
	})

	tests := []struct {
		name    string
		proxies *core.TrustedProxies
		remote  string
		xff     string
		want    string
	}{
		{"no proxies configured", nil, "10.0.0.2:80", "198.51.100.1", "10.0.0.2"},
		{"direct client spoofing", proxies, "203.0.113.7:5123", "198.51.100.1", "203.0.113.7"},
		{"behind trusted proxy", proxies, "10.0.0.2:80", "1.2.3.4, 198.51.100.1", "198.51.100.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			req.Header.Set("X-Forwarded-For", tt.xff)
			serve(RealIP(tt.proxies)(capture), req)
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestCORS(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}
	h := CORS(cfg)(ok)

	req := httptest.NewRequest(http.MethodOptions, "/api/generate-pptx", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := serve(h, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = serve(h, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	wild := CORS(config.CORSConfig{AllowedOrigins: []string{"*"}})(ok)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	assert.Equal(t, "*", serve(wild, req).Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeaders(t *testing.T) {
	rec := serve(SecurityHeaders(false)(ok), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	rec = serve(SecurityHeaders(true)(ok), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}

func TestRateLimiterLocalOnly(t *testing.T) {
	rl := NewRateLimiter(nil, RateLimitConfig{Limit: PerMinute(1, 2)})
	h := rl.Handler(ok)

	req := func(ip string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = ip + ":4000"
		return r
	}

	assert.Equal(t, http.StatusOK, serve(h, req("198.51.100.1")).Code)
	assert.Equal(t, http.StatusOK, serve(h, req("198.51.100.1")).Code)

	rec := serve(h, req("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, serve(h, req("198.51.100.2")).Code)
}

func TestTieredRateLimiter(t *testing.T) {
	tiers := map[string]TierConfig{
		"guest":    {RequestsPerMinute: 1, BurstSize: 1},
		"lifetime": {RequestsPerMinute: 60, BurstSize: 5},
	}
	tier := "guest"
	h := TieredRateLimiter(nil, tiers, func(*http.Request) string { return tier })(ok)

	newReq := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "198.51.100.9:4000"
		return r
	}

	rec := serve(h, newReq())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest", rec.Header().Get("X-RateLimit-Tier"))
	assert.Equal(t, http.StatusTooManyRequests, serve(h, newReq()).Code)

	tier = "lifetime"
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(h, newReq()).Code)
	}

	tier = "unknown"
	rec = serve(h, newReq())
	assert.Equal(t, "guest", rec.Header().Get("X-RateLimit-Tier"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestTracingNamesSpanByRoute(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	r := chi.NewRouter()
	r.Use(Tracing)
	r.Get("/download/{filename}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/download/x.pptx", nil))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /download/{filename}", spans[0].Name())

	var status int64
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "http.response.status_code" {
			status = kv.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(http.StatusNotFound), status)
}
