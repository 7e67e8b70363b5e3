package httpclient

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCBConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      5 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func noRetryClient() *Client {
	return New(Config{Timeout: 5 * time.Second, MaxRetries: 0, MaxConnsPerHost: 10})
}

func failingServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func trip(cb *CircuitBreakerClient, url string) {
	for i := 0; i < 3; i++ {
		_, _ = cb.Get(context.Background(), url)
	}
}

func TestCircuitBreaker_ClosedState_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-closed"), testLogger())

	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_OpenStateRejectsWithoutCallingUpstream(t *testing.T) {
	var hits atomic.Int32
	srv := failingServer(t, &hits)
	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-open"), testLogger())

	trip(cb, srv.URL)
	require.Equal(t, gobreaker.StateOpen, cb.State())
	before := hits.Load()

	for i := 0; i < 3; i++ {
		_, err := cb.Get(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, before, hits.Load())
}

func TestCircuitBreaker_HalfOpenToClosedRecovery(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testCBConfig("cb-recovery")
	cfg.Timeout = 100 * time.Millisecond
	cb := NewCircuitBreakerClient(noRetryClient(), cfg, testLogger())

	trip(cb, srv.URL)
	require.Equal(t, gobreaker.StateOpen, cb.State())

	time.Sleep(150 * time.Millisecond)
	failing.Store(false)

	resp, err := cb.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_4xxNotCountedAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-4xx"), testLogger())
	for i := 0; i < 5; i++ {
		resp, err := cb.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_DefaultConfig(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig("turnstile")
	assert.Equal(t, "turnstile", cfg.Name)
	assert.Equal(t, uint32(5), cfg.MinRequests)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestPostJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "tok", in["response"])
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-postjson"), testLogger())

	var out struct {
		Success bool `json:"success"`
	}
	require.NoError(t, cb.PostJSON(context.Background(), srv.URL, map[string]string{"response": "tok"}, &out))
	assert.True(t, out.Success)
}

func TestPostJSON_ClientErrorMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-secret"]}`))
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-postjson-400"), testLogger())

	err := cb.PostJSON(context.Background(), srv.URL, struct{}{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "invalid-input-secret")
}

func TestPostJSON_OpenBreakerIsServiceUnavailable(t *testing.T) {
	srv := failingServer(t, nil)
	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-postjson-open"), testLogger())
	trip(cb, srv.URL)

	err := cb.PostJSON(context.Background(), srv.URL, struct{}{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestCircuitBreaker_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	cb := NewCircuitBreakerClient(noRetryClient(), testCBConfig("cb-ctx"), testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := cb.Get(ctx, srv.URL)
	require.Error(t, err)
}
