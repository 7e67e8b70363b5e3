// Package verification checks bot-verification tokens with Cloudflare Turnstile.
package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alexanderdross/V0-Desiree/pkg/httpclient"
)

const (
	// DefaultVerifyURL is Cloudflare's siteverify endpoint.
	DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	// TestSiteKey is Cloudflare's always-pass site key, served when none is configured.
	TestSiteKey = "1x00000000000000000000AA"
)

// ErrNotConfigured is returned when no secret key is set. Every token is denied.
var ErrNotConfigured = errors.New("turnstile secret key is not configured")

var verificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "turnstile_verifications_total",
		Help: "Turnstile token verifications by result.",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(verificationsTotal)
}

// Verifier decides whether a widget token was produced by a human.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Config configures the Turnstile verifier.
type Config struct {
	SecretKey string
	SiteKey   string
	VerifyURL string
}

// PublicSiteKey returns the configured site key or Cloudflare's test key.
func (c Config) PublicSiteKey() string {
	if c.SiteKey == "" {
		return TestSiteKey
	}
	return c.SiteKey
}

type siteverifyRequest struct {
	Secret   string `json:"secret"`
	Response string `json:"response"`
	RemoteIP string `json:"remoteip,omitempty"`
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
}

// Turnstile verifies tokens against the siteverify API through a circuit breaker.
type Turnstile struct {
	client *httpclient.CircuitBreakerClient
	cfg    Config
	logger *slog.Logger
}

// NewTurnstile creates a verifier. A nil client gets the package defaults.
func NewTurnstile(cfg Config, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *Turnstile {
	if cfg.VerifyURL == "" {
		cfg.VerifyURL = DefaultVerifyURL
	}
	if client == nil {
		client = httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("turnstile"),
			logger,
		)
	}
	return &Turnstile{client: client, cfg: cfg, logger: logger}
}

// Verify reports whether token passes. A missing secret denies every token
// and returns ErrNotConfigured; transport failures deny and return the error.
func (t *Turnstile) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if t.cfg.SecretKey == "" {
		verificationsTotal.WithLabelValues("not_configured").Inc()
		t.logger.ErrorContext(ctx, "turnstile secret key is not configured")
		return false, ErrNotConfigured
	}
	if strings.TrimSpace(token) == "" {
		verificationsTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}

	var resp siteverifyResponse
	err := t.client.PostJSON(ctx, t.cfg.VerifyURL, siteverifyRequest{
		Secret:   t.cfg.SecretKey,
		Response: token,
		RemoteIP: remoteIP,
	}, &resp)
	if err != nil {
		verificationsTotal.WithLabelValues("error").Inc()
		t.logger.ErrorContext(ctx, "turnstile verification error", slog.String("error", err.Error()))
		return false, fmt.Errorf("turnstile siteverify: %w", err)
	}

	if !resp.Success {
		verificationsTotal.WithLabelValues("rejected").Inc()
		t.logger.InfoContext(ctx, "turnstile token rejected",
			slog.Any("error_codes", resp.ErrorCodes),
		)
		return false, nil
	}

	verificationsTotal.WithLabelValues("accepted").Inc()
	return true, nil
}
