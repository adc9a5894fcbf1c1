package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestRecovery_PanicReturns500(t *testing.T) {
	handler := Recovery(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "INTERNAL")
}

func TestRecovery_AbortHandlerPanicPropagates(t *testing.T) {
	handler := Recovery(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rr := httptest.NewRecorder()

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() { handler.ServeHTTP(rr, req) })
}

func TestRecovery_NormalRequestPassesThrough(t *testing.T) {
	handler := Recovery(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestRequestLogging_SetsCorrelationIDHeader(t *testing.T) {
	handler := RequestLogging(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.NotEmpty(t, rr.Header().Get("X-Correlation-ID"))
}

func TestRequestLogging_PreservesExistingCorrelationID(t *testing.T) {
	handler := RequestLogging(newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Correlation-ID", "corr-123")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "corr-123", rr.Header().Get("X-Correlation-ID"))
}

func TestRateLimit_WithinBurst_Pass(t *testing.T) {
	handler := RateLimit(10, 10, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code, "request %d should pass", i+1)
	}
}

func TestRateLimit_ExceedingBurst_Returns429(t *testing.T) {
	handler := RateLimit(1, 2, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var rateLimited bool
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			rateLimited = true
			assert.Contains(t, rr.Body.String(), "RATE_LIMITED")
			break
		}
	}
	assert.True(t, rateLimited, "should have been rate limited after exceeding burst")
}

func TestRateLimit_DifferentIPs_IndependentLimits(t *testing.T) {
	handler := RateLimit(1, 2, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.RemoteAddr = "10.0.0.2:12345"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestVisitorStore_CleanupEvictsStale(t *testing.T) {
	store := newVisitorStore(10, 10, time.Minute)

	now := time.Now()
	store.nowFunc = func() time.Time { return now }
	store.getVisitor("10.0.0.1")
	store.getVisitor("10.0.0.2")
	assert.Equal(t, 2, store.len())

	// Advance the clock past the TTL for one visitor only.
	store.nowFunc = func() time.Time { return now.Add(30 * time.Second) }
	store.getVisitor("10.0.0.2")

	store.nowFunc = func() time.Time { return now.Add(75 * time.Second) }
	store.cleanup()

	assert.Equal(t, 1, store.len())
}

func TestClientIP_XForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.1")
	req.RemoteAddr = "10.0.0.1:12345"

	assert.Equal(t, "203.0.113.50", clientIP(req))
}

func TestClientIP_XRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", "198.51.100.42")
	req.RemoteAddr = "10.0.0.1:12345"

	assert.Equal(t, "198.51.100.42", clientIP(req))
}

func TestClientIP_RemoteAddrFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:12345"

	assert.Equal(t, "10.0.0.1", clientIP(req))
}

func TestIPAllowlist_AllowedCIDR(t *testing.T) {
	handler := IPAllowlist([]string{"10.0.0.0/8"}, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "10.1.2.3:9999"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestIPAllowlist_DeniedIP(t *testing.T) {
	handler := IPAllowlist([]string{"10.0.0.0/8"}, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	req.RemoteAddr = "203.0.113.7:9999"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "FORBIDDEN")
}
