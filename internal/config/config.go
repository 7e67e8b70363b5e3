package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	pkgconfig "github.com/alexanderdross/V0-Desiree/pkg/config"
)

// Payment providers selectable with PAYMENT_PROVIDER.
const (
	ProviderStripe = "stripe"
	ProviderMock   = "mock"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	BaseURL  string `env:"BASE_URL" envDefault:"http://localhost:3000"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart slot name and TTL in hours (default: 30 days)
	CartSlotName string `env:"CART_SLOT_NAME" envDefault:"sol-social-cart"`
	CartTTL      int    `env:"CART_TTL_HOURS" envDefault:"720"`

	// Kafka; no brokers disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Payments
	PaymentProvider      string `env:"PAYMENT_PROVIDER" envDefault:"mock"`
	StripeSecretKey      string `env:"STRIPE_SECRET_KEY"`
	StripePublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
	StripeAPIURL         string `env:"STRIPE_API_URL"`
	Currency             string `env:"CURRENCY" envDefault:"usd"`

	// Turnstile bot verification
	TurnstileSecretKey string `env:"TURNSTILE_SECRET_KEY"`
	TurnstileSiteKey   string `env:"TURNSTILE_SITE_KEY"`
	TurnstileVerifyURL string `env:"TURNSTILE_VERIFY_URL"`

	// Visitor cookie keys, base64 encoded.
	CookieHashKey  string `env:"COOKIE_HASH_KEY"`
	CookieBlockKey string `env:"COOKIE_BLOCK_KEY"`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`

	ContactRateLimitRPS   float64 `env:"CONTACT_RATE_LIMIT_RPS" envDefault:"0.2"`
	ContactRateLimitBurst int     `env:"CONTACT_RATE_LIMIT_BURST" envDefault:"5"`

	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables and an optional .env
// file in the working directory.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, ".env"); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// CartTTLDuration returns the cart slot TTL.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}

// CookieKeys decodes the visitor cookie keys. An empty block key means the
// cookie is signed but not encrypted.
func (c *Config) CookieKeys() (hash, block []byte, err error) {
	if c.CookieHashKey != "" {
		if hash, err = decodeKey(c.CookieHashKey); err != nil {
			return nil, nil, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
		}
	}
	if c.CookieBlockKey != "" {
		if block, err = decodeKey(c.CookieBlockKey); err != nil {
			return nil, nil, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
		}
	}
	return hash, block, nil
}

func decodeKey(s string) ([]byte, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		b, err = base64.StdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	return b, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute URL, got %q", c.BaseURL)
	}
	if c.CartSlotName == "" {
		return fmt.Errorf("CART_SLOT_NAME is required")
	}
	if c.CartTTL < 1 {
		return fmt.Errorf("CART_TTL_HOURS must be positive, got %d", c.CartTTL)
	}

	switch c.PaymentProvider {
	case ProviderStripe:
		if c.StripeSecretKey == "" {
			return fmt.Errorf("STRIPE_SECRET_KEY is required when PAYMENT_PROVIDER=stripe")
		}
	case ProviderMock:
		if c.IsProduction() {
			return fmt.Errorf("PAYMENT_PROVIDER=mock is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown PAYMENT_PROVIDER %q", c.PaymentProvider)
	}

	hash, block, err := c.CookieKeys()
	if err != nil {
		return err
	}
	if c.IsProduction() && len(hash) < 32 {
		return fmt.Errorf("COOKIE_HASH_KEY must decode to at least 32 bytes in production")
	}
	if n := len(block); n != 0 && n != 16 && n != 24 && n != 32 {
		return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes, got %d", n)
	}

	if c.ContactRateLimitRPS <= 0 || c.ContactRateLimitBurst < 1 {
		return fmt.Errorf("contact rate limit must be positive")
	}
	if c.OTELSampleRate < 0.0 || c.OTELSampleRate > 1.0 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", c.OTELSampleRate)
	}
	return nil
}
