package verification

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
	"github.com/alexanderdross/V0-Desiree/pkg/httpclient"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(name string) *httpclient.CircuitBreakerClient {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	cb := httpclient.DefaultCircuitBreakerConfig(name)
	cb.MinRequests = 1
	cb.FailureRatio = 1
	cb.Timeout = time.Minute
	return httpclient.NewCircuitBreakerClient(httpclient.New(cfg), cb, quietLogger())
}

func siteverify(t *testing.T, success bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req siteverifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "secret-key", req.Secret)
		assert.Equal(t, "203.0.113.9", req.RemoteIP)

		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{"success": success && req.Response == "good-token"}
		if !success {
			body["error-codes"] = []string{"invalid-input-response"}
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTurnstile_Accepts(t *testing.T) {
	srv := siteverify(t, true)
	v := NewTurnstile(Config{SecretKey: "secret-key", VerifyURL: srv.URL}, testClient(t.Name()), quietLogger())

	ok, err := v.Verify(context.Background(), "good-token", "203.0.113.9")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTurnstile_Rejects(t *testing.T) {
	srv := siteverify(t, false)
	v := NewTurnstile(Config{SecretKey: "secret-key", VerifyURL: srv.URL}, testClient(t.Name()), quietLogger())

	ok, err := v.Verify(context.Background(), "good-token", "203.0.113.9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTurnstile_MissingSecretDenies(t *testing.T) {
	v := NewTurnstile(Config{}, testClient(t.Name()), quietLogger())

	ok, err := v.Verify(context.Background(), "good-token", "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestTurnstile_EmptyTokenDeniedWithoutCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("siteverify must not be called")
	}))
	t.Cleanup(srv.Close)
	v := NewTurnstile(Config{SecretKey: "s", VerifyURL: srv.URL}, testClient(t.Name()), quietLogger())

	ok, err := v.Verify(context.Background(), "  ", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTurnstile_UpstreamFailureDenies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	v := NewTurnstile(Config{SecretKey: "s", VerifyURL: srv.URL}, testClient(t.Name()), quietLogger())

	ok, err := v.Verify(context.Background(), "tok", "")
	assert.False(t, ok)
	require.Error(t, err)

	// the breaker is now open
	ok, err = v.Verify(context.Background(), "tok", "")
	assert.False(t, ok)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

func TestConfig_PublicSiteKey(t *testing.T) {
	assert.Equal(t, TestSiteKey, Config{}.PublicSiteKey())
	assert.Equal(t, "0xABC", Config{SiteKey: "0xABC"}.PublicSiteKey())
}

func TestNewTurnstile_Defaults(t *testing.T) {
	v := NewTurnstile(Config{SecretKey: "s"}, nil, quietLogger())
	assert.Equal(t, DefaultVerifyURL, v.cfg.VerifyURL)
	assert.NotNil(t, v.client)
}
