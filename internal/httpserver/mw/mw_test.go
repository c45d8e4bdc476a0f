package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER   abc  ", "abc", true},
		{"Basic abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}

func TestBearerAuthRejectsWhenTokenUnset(t *testing.T) {
	h := BearerAuth("", logger.NewNop())(ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, serve(h, req).Code)
}

func TestAllowOnlyCIDRS(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"10.0.0.0/8", "192.168.1.10"}, false, logger.NewNop())(ok)

	tests := []struct {
		remote string
		want   int
	}{
		{"10.1.2.3:5555", http.StatusOK},
		{"192.168.1.10:80", http.StatusOK},
		{"192.168.1.11:80", http.StatusForbidden},
		{"8.8.8.8:53", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		req.RemoteAddr = tt.remote
		assert.Equal(t, tt.want, serve(h, req).Code, tt.remote)
	}
}

func TestAllowOnlyCIDRSTrustsProxyHeaders(t *testing.T) {
	h := AllowOnlyCIDRS([]string{"203.0.113.7"}, true, logger.NewNop())(ok)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, http.StatusOK, serve(h, req).Code)
}

func TestAllowOnlyCIDRSEmptyIsPassthrough(t *testing.T) {
	h := AllowOnlyCIDRS(nil, false, logger.NewNop())(ok)
	assert.Equal(t, http.StatusOK, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestEnforceHost(t *testing.T) {
	h := EnforceHost([]string{"bookmarks.example.com:8000", "*.internal.lan"}, logger.NewNop())(ok)

	tests := []struct {
		host string
		want int
	}{
		{"bookmarks.example.com", http.StatusOK},
		{"Bookmarks.Example.com:8000", http.StatusOK},
		{"api.internal.lan", http.StatusOK},
		{"internal.lan", http.StatusForbidden},
		{"evil.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		req.Host = tt.host
		assert.Equal(t, tt.want, serve(h, req).Code, tt.host)
	}
}

func TestMatchHost(t *testing.T) {
	assert.True(t, matchHost("a.example.com", "*.example.com"))
	assert.False(t, matchHost("example.com", "*.example.com"))
	assert.False(t, matchHost("badexample.com", "*.example.com"))
	assert.True(t, matchHost("example.com", "example.com"))
}

func TestRateLimit(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	h := rateLimit(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60}, logger.NewNop(), clock)(ok)
	req := func(remote string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/bookmarks", nil)
		r.RemoteAddr = remote
		return r
	}

	rec := serve(h, req("1.1.1.1:1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, serve(h, req("1.1.1.1:2")).Code)

	rec = serve(h, req("1.1.1.1:3"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// other clients have their own bucket
	assert.Equal(t, http.StatusOK, serve(h, req("2.2.2.2:1")).Code)

	// one token per second at 60/min
	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, serve(h, req("1.1.1.1:4")).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	h := RateLimit(RateLimitConfig{}, logger.NewNop())(ok)
	for i := 0; i < 5; i++ {
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{Burst: 1, IdleTTL: time.Minute, SweepInterval: time.Minute}, func() time.Time { return now })

	l.take("a")
	now = now.Add(2 * time.Minute)
	l.take("b")

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.buckets, "a")
	assert.Contains(t, l.buckets, "b")
}

func TestSecureHeaders(t *testing.T) {
	rec := serve(SecureHeaders()(ok), httptest.NewRequest(http.MethodGet, "/", nil))

	for _, kv := range secureHeaders {
		assert.Equal(t, kv[1], rec.Header().Get(kv[0]), kv[0])
	}
}

func TestStatusWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &statusWriter{ResponseWriter: rec}

	_, _ = w.Write([]byte("x"))
	w.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 1, w.bytes)
}
