// Package stripe opens embedded Stripe Checkout sessions.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.opentelemetry.io/otel/attribute"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/provider"
	"github.com/alexanderdross/V0-Desiree/pkg/tracing"
)

const tracerName = "github.com/alexanderdross/V0-Desiree/internal/provider/stripe"

// ReturnPath is appended to the site base URL; Stripe substitutes the placeholder.
const ReturnPath = "/checkout/success?session_id={CHECKOUT_SESSION_ID}"

// Config configures the Stripe provider.
type Config struct {
	SecretKey string
	// APIURL overrides the Stripe API base, used against local fakes.
	APIURL     string
	Timeout    time.Duration
	MaxRetries int64
}

// Provider implements provider.Provider on the Stripe Checkout Sessions API.
type Provider struct {
	sessions session.Client
}

var _ provider.Provider = (*Provider)(nil)

// New builds a provider with its own backend so the global stripe state is untouched.
func New(cfg Config) (*Provider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe: secret key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	backendCfg := &stripego.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripego.Int64(cfg.MaxRetries),
		LeveledLogger:     &stripego.LeveledLogger{Level: stripego.LevelNull},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripego.String(strings.TrimRight(cfg.APIURL, "/"))
	}

	return &Provider{
		sessions: session.Client{
			B:   stripego.GetBackendWithConfig(stripego.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
	}, nil
}

// Name identifies the provider in logs and events.
func (p *Provider) Name() string { return "stripe" }

// CreateSession opens an embedded checkout session for the request's items.
func (p *Provider) CreateSession(ctx context.Context, req *provider.SessionRequest) (_ *provider.Session, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "stripe.checkout.sessions.create",
		attribute.Int("checkout.line_items", len(req.Items)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	params := NewSessionParams(req)
	params.Context = ctx

	s, err := p.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}
	return toSession(s), nil
}

// GetSession retrieves a session by id.
func (p *Provider) GetSession(ctx context.Context, id string) (_ *provider.Session, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "stripe.checkout.sessions.retrieve",
		attribute.String("checkout.session_id", id),
	)
	defer func() { tracing.EndSpan(span, err) }()

	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.sessions.Get(id, params)
	if err != nil {
		var stripeErr *stripego.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", provider.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("stripe get session: %w", err)
	}
	return toSession(s), nil
}

// NewSessionParams maps a session request onto Stripe's parameters. Unit
// amounts are converted from whole currency units to cents.
func NewSessionParams(req *provider.SessionRequest) *stripego.CheckoutSessionParams {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = string(stripego.CurrencyUSD)
	}

	lineItems := make([]*stripego.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		product := &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripego.String(item.Name),
			Metadata: map[string]string{
				"type":   string(item.Kind),
				"itemId": item.ID,
			},
		}
		if item.Variant != "" {
			product.Description = stripego.String("Color: " + item.Variant)
		}
		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripego.String(currency),
				ProductData: product,
				UnitAmount:  stripego.Int64(domain.ToMinorUnits(item.Price)),
			},
			Quantity: stripego.Int64(int64(item.Quantity)),
		})
	}

	params := &stripego.CheckoutSessionParams{
		UIMode:        stripego.String(string(stripego.CheckoutSessionUIModeEmbedded)),
		Mode:          stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		CustomerEmail: stripego.String(req.Booking.Email),
		ReturnURL:     stripego.String(req.ReturnURL),
	}
	for k, v := range req.Booking.Metadata() {
		params.AddMetadata(k, v)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	return params
}

// ReturnURL builds the post-payment return address for a site base URL.
func ReturnURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + ReturnPath
}

func toSession(s *stripego.CheckoutSession) *provider.Session {
	return &provider.Session{
		ID:            s.ID,
		ClientSecret:  s.ClientSecret,
		Status:        provider.SessionStatus(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
}
