package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"remote addr without port", nil, "192.0.2.1", "192.0.2.1"},
		{"forwarded for ignored", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "198.51.100.4:1", "198.51.100.4"},
		{"real ip ignored", map[string]string{"X-Real-IP": "203.0.113.9"}, "198.51.100.4:1", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/token", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			require.Equal(t, tt.want, IPKeyExtractor(r))
		})
	}
}

func TestTrustedProxyKeyExtractor(t *testing.T) {
	trusted, err := ParseTrustedProxies("10.0.0.0/8, 192.0.2.10")
	require.NoError(t, err)
	extract := TrustedProxyKeyExtractor(trusted)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"direct client", nil, "198.51.100.4:1", "198.51.100.4"},
		{"untrusted peer cannot forward", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "198.51.100.4:1", "198.51.100.4"},
		{"trusted proxy", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.1:1", "203.0.113.7"},
		{"spoofed leftmost hop", map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7, 10.0.0.2"}, "10.0.0.1:1", "203.0.113.7"},
		{"bare address proxy", map[string]string{"X-Real-IP": " 203.0.113.9 "}, "192.0.2.10:1", "203.0.113.9"},
		{"trusted proxy without headers", nil, "10.0.0.1:1", "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/token", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			require.Equal(t, tt.want, extract(r))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies("")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = ParseTrustedProxies("10.1.2.3/8,::1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "10.0.0.0/8", got[0].String())
	require.Equal(t, "::1/128", got[1].String())

	_, err = ParseTrustedProxies("10.0.0.0/8, not-an-ip")
	require.ErrorContains(t, err, "not-an-ip")
}

func TestRateLimitMiddleware_ForwardedHeaderDoesNotResetBucket(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := RateLimitMiddleware(cfg, IPKeyExtractor, nil)(okHandler())

	codes := make([]int, 0, 3)
	for _, xff := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		r := httptest.NewRequest(http.MethodPost, "/token/2fa", nil)
		r.RemoteAddr = "198.51.100.4:1"
		r.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		codes = append(codes, rec.Code)
	}
	require.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	h := RateLimitMiddleware(cfg, IPKeyExtractor, nil)(okHandler())

	do := func(remote string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/token", nil)
		r.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec
	}

	require.Equal(t, http.StatusOK, do("192.0.2.1:1").Code)
	require.Equal(t, http.StatusOK, do("192.0.2.1:2").Code)

	rec := do("192.0.2.1:3")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))

	// Other clients have their own bucket
	require.Equal(t, http.StatusOK, do("192.0.2.2:1").Code)
}

func TestRateLimitMiddleware_CustomReject(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	var rejected int
	h := RateLimitMiddleware(cfg, IPKeyExtractor, func(w http.ResponseWriter, r *http.Request, retryAfter int) {
		rejected++
		require.GreaterOrEqual(t, retryAfter, 1)
		w.WriteHeader(http.StatusTeapot)
	})(okHandler())

	for i := range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", nil))
		if i == 0 {
			require.Equal(t, http.StatusOK, rec.Code)
		} else {
			require.Equal(t, http.StatusTeapot, rec.Code)
		}
	}
	require.Equal(t, 2, rejected)
}

func TestRateLimitMiddleware_EmptyKeyAllowed(t *testing.T) {
	cfg := RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := RateLimitMiddleware(cfg, func(*http.Request) string { return "" }, nil)(okHandler())

	for range 5 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/token", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_SweepsIdleKeys(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := newRateLimiter(RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})
	rl.now = func() time.Time { return now }
	rl.lastCleanup = now

	ok, _ := rl.allow("a")
	require.True(t, ok)
	ok, delay := rl.allow("a")
	require.False(t, ok)
	require.Positive(t, delay)

	now = now.Add(idleLimiterTTL + time.Second)
	ok, _ = rl.allow("b")
	require.True(t, ok)
	require.NotContains(t, rl.entries, "a")
	require.Contains(t, rl.entries, "b")
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "10")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	got := ParseRateLimitFromEnv("TEST", def)
	require.Equal(t, 50, got.RequestsPerWindow)
	require.Equal(t, 10*time.Second, got.Window)
	require.Equal(t, 5, got.Burst)

	require.Equal(t, def, ParseRateLimitFromEnv("UNSET", def))
}
