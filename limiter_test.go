package flatblog_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/flatblog"
)

func allow(t *testing.T, l *flatblog.RequestLimiter, ip string) bool {
	t.Helper()
	ok, err := l.Allow(ip)
	require.NoError(t, err)
	return ok
}

func TestRequestLimiterBlocksAfterMax(t *testing.T) {
	t.Parallel()
	limiter := flatblog.NewRequestLimiter(2, 200*time.Millisecond)
	t.Cleanup(limiter.Close)
	ip := "203.0.113.10"

	assert.True(t, allow(t, limiter, ip), "first request")
	assert.True(t, allow(t, limiter, ip), "second request")
	assert.False(t, allow(t, limiter, ip), "third request")
}

func TestRequestLimiterResetsAfterWindow(t *testing.T) {
	t.Parallel()
	limiter := flatblog.NewRequestLimiter(1, 150*time.Millisecond)
	t.Cleanup(limiter.Close)
	ip := "203.0.113.20"

	assert.True(t, allow(t, limiter, ip))
	assert.False(t, allow(t, limiter, ip))

	time.Sleep(200 * time.Millisecond)
	assert.True(t, allow(t, limiter, ip), "request after window")
}

func TestRequestLimiterIsPerIP(t *testing.T) {
	t.Parallel()
	limiter := flatblog.NewRequestLimiter(1, 200*time.Millisecond)
	t.Cleanup(limiter.Close)

	assert.True(t, allow(t, limiter, "203.0.113.30"))
	assert.True(t, allow(t, limiter, "203.0.113.31"), "second ip is independent")
	assert.False(t, allow(t, limiter, "203.0.113.30"))
}

func TestRequestLimiterCloseTwice(t *testing.T) {
	t.Parallel()
	limiter := flatblog.NewRequestLimiter(1, time.Second)
	limiter.Close()
	limiter.Close()
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()
	a := flatblog.New(flatblog.SiteConfig{RateLimit: 2}, sampleStore(), textViews(),
		flatblog.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(func() { _ = a.Shutdown(t.Context()) })

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		a.Echo.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("198.51.100.1"))
	assert.Equal(t, http.StatusOK, request("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("198.51.100.1"))
	assert.Equal(t, http.StatusOK, request("198.51.100.2"))
}

func TestNoRateLimitByDefault(t *testing.T) {
	t.Parallel()
	a := newTestApp(t, sampleStore(), flatblog.SiteConfig{})

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, get(a, "/").Code)
	}
}
