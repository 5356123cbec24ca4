package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coupdetete/backend/internal/middleware"
)

func hit(h http.Handler, remote string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/roll", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

// TestRateLimiter_PerClientBurst verifies that each client gets its own
// bucket: one client exhausting its burst does not affect another.
func TestRateLimiter_PerClientBurst(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// One token per minute: nothing refills during the test.
	limiter, err := middleware.NewRateLimiter(1, 3, logger)
	require.NoError(t, err)
	h := limiter.Handler(trivialHandler)

	for i := range 3 {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1:5000"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:5001"), "same host, other port")
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2:5000"))
}

func TestNewRateLimiter_RejectsNonPositive(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, tc := range []struct{ perMinute, burst int }{{0, 5}, {30, 0}, {-1, -1}} {
		l, err := middleware.NewRateLimiter(tc.perMinute, tc.burst, logger)
		assert.Error(t, err, "%d/min burst %d", tc.perMinute, tc.burst)
		assert.Nil(t, l)
	}
}
