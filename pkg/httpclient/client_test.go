package httpclient

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/uzgnsodyum/shopping-site-2/pkg/errors"
)

func testConfig() Config {
	return Config{
		Timeout:         5 * time.Second,
		MaxRetries:      2,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    5 * time.Millisecond,
		MaxConnsPerHost: 10,
	}
}

func TestClient_Get_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := New(testConfig())
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_RetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(testConfig())
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetry4xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := New(testConfig())
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 0
	cbCfg := DefaultCircuitBreakerConfig("test-breaker")
	cbCfg.MinRequests = 3

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cb := NewCircuitBreakerClient(New(cfg), cbCfg, logger)

	var sawOpen bool
	for i := 0; i < 10; i++ {
		resp, err := cb.Get(context.Background(), srv.URL)
		if resp != nil {
			resp.Body.Close()
		}
		if errors.Is(err, ErrCircuitOpen) {
			sawOpen = true
			break
		}
	}

	assert.True(t, sawOpen, "breaker should open after repeated failures")
}

func TestCircuitBreaker_FallbackInvokedWhenOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxRetries = 0
	cbCfg := DefaultCircuitBreakerConfig("test-breaker-fallback")
	cbCfg.MinRequests = 2

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cb := NewCircuitBreakerClient(New(cfg), cbCfg, logger).WithFallback(
		func(ctx context.Context, err error) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"data":[]}`)),
				Header:     make(http.Header),
			}, nil
		},
	)

	var fallbackHit bool
	for i := 0; i < 10; i++ {
		resp, err := cb.Get(context.Background(), srv.URL)
		if err == nil && resp.StatusCode == http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if strings.Contains(string(body), `"data"`) {
				fallbackHit = true
				break
			}
		}
		if resp != nil {
			resp.Body.Close()
		}
	}

	assert.True(t, fallbackHit, "fallback should serve responses while open")
}

func TestParseResponseError_StructuredNotFound(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader(`{"error":{"code":"NOT_FOUND","message":"product not found"}}`)),
	}

	err := ParseResponseError(resp, "catalog")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestParseResponseError_StructuredConflict(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusConflict,
		Body:       io.NopCloser(strings.NewReader(`{"error":{"code":"CONFLICT","message":"cart version mismatch"}}`)),
	}

	err := ParseResponseError(resp, "cart")
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader("upstream timeout")),
	}

	err := ParseResponseError(resp, "catalog")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream timeout")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(http.StatusBadRequest))
	assert.True(t, IsClientError(http.StatusNotFound))
	assert.False(t, IsClientError(http.StatusInternalServerError))
	assert.False(t, IsClientError(http.StatusOK))
}
