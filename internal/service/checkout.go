package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderdross/V0-Desiree/internal/cartstore"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/event"
	"github.com/alexanderdross/V0-Desiree/internal/provider"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
	"github.com/alexanderdross/V0-Desiree/pkg/validator"
)

// CheckoutConfig holds the site-wide checkout settings.
type CheckoutConfig struct {
	// ReturnURL is where the provider sends the visitor after payment.
	ReturnURL string
	Currency  string
}

// CheckoutResult is what the client needs to mount the payment widget.
type CheckoutResult struct {
	SessionID    string           `json:"session_id"`
	ClientSecret string           `json:"client_secret"`
	AmountTotal  int64            `json:"amount_total"`
	Currency     string           `json:"currency"`
	Flow         domain.FlowState `json:"flow"`
}

// Confirmation is the outcome of returning from the payment widget.
type Confirmation struct {
	SessionID        string                 `json:"session_id"`
	DetailsAvailable bool                   `json:"details_available"`
	Paid             bool                   `json:"paid"`
	Status           provider.SessionStatus `json:"status,omitempty"`
	AmountTotal      int64                  `json:"amount_total,omitempty"`
	Currency         string                 `json:"currency,omitempty"`
	Booking          *domain.BookingDetails `json:"booking,omitempty"`
	CartCleared      bool                   `json:"cart_cleared"`
	Flow             domain.FlowState       `json:"flow"`
}

// CheckoutService bridges a visitor's cart to the payment provider.
type CheckoutService struct {
	stores   *cartstore.Factory
	provider provider.Provider
	events   *event.Producer
	cfg      CheckoutConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(stores *cartstore.Factory, p provider.Provider, events *event.Producer, cfg CheckoutConfig, logger *slog.Logger) *CheckoutService {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &CheckoutService{
		stores:   stores,
		provider: p,
		events:   events,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for the booking lead-time check.
func (s *CheckoutService) WithClock(now func() time.Time) *CheckoutService {
	s.now = now
	return s
}

// ValidateBooking checks the booking details without touching the provider.
func (s *CheckoutService) ValidateBooking(details *domain.BookingDetails) error {
	details.Normalize()
	if missing := details.MissingFields(); len(missing) > 0 {
		return apperrors.InvalidInput("missing required fields: " + strings.Join(missing, ", "))
	}
	if err := validator.Validate(details); err != nil {
		return err
	}
	if !details.LeadTimeOK(s.now()) {
		return apperrors.InvalidInput(fmt.Sprintf("event date must be at least %d days from today", domain.MinimumLeadDays))
	}
	return nil
}

// StartCheckout opens a payment session for the visitor's cart. The cart and
// booking guards run before the provider is called; a provider failure leaves
// the cart untouched and the flow back at details entry.
func (s *CheckoutService) StartCheckout(ctx context.Context, visitorID string, details domain.BookingDetails) (*CheckoutResult, error) {
	if visitorID == "" {
		return nil, apperrors.InvalidInput("visitor id is required")
	}
	flow := domain.NewCheckoutFlow(domain.FlowBrowsing)

	cart, err := s.stores.For(visitorID).Cart(ctx)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}
	if err := flow.Advance(domain.FlowCartPopulated); err != nil {
		return nil, err
	}

	if err := s.ValidateBooking(&details); err != nil {
		return nil, err
	}
	if err := flow.Advance(domain.FlowDetailsEntered); err != nil {
		return nil, err
	}

	session, err := s.provider.CreateSession(ctx, &provider.SessionRequest{
		Items:          cart.Items,
		Booking:        details,
		Currency:       s.cfg.Currency,
		ReturnURL:      s.cfg.ReturnURL,
		IdempotencyKey: checkoutKey(visitorID, cart.Items, details),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "checkout session creation failed",
			slog.String("visitor_id", visitorID),
			slog.String("provider", s.provider.Name()),
			slog.Any("flow", flow.History()),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.SessionCreation(err)
	}
	if err := flow.AdvanceAll(domain.FlowSessionCreated, domain.FlowPaymentWidgetShown); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("visitor_id", visitorID),
		slog.String("session_id", session.ID),
		slog.Int64("amount_total", session.AmountTotal),
	)
	if err := s.events.PublishCheckoutSessionCreated(ctx, visitorID, s.provider.Name(), session, cart, details); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.session_created event",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}

	return &CheckoutResult{
		SessionID:    session.ID,
		ClientSecret: session.ClientSecret,
		AmountTotal:  session.AmountTotal,
		Currency:     session.Currency,
		Flow:         flow.State(),
	}, nil
}

// checkoutKey derives the provider idempotency key from the visitor, the cart
// and the booking. A resubmitted form with the same contents reuses the session
// the first submit created.
func checkoutKey(visitorID string, items []domain.LineItem, details domain.BookingDetails) string {
	payload, _ := json.Marshal(struct {
		Visitor string                `json:"v"`
		Items   []domain.LineItem     `json:"i"`
		Booking domain.BookingDetails `json:"b"`
	}{visitorID, items, details})
	return "checkout-" + uuid.NewSHA1(uuid.NameSpaceOID, payload).String()
}

// GetSession retrieves a payment session. Any failure reports it as absent.
func (s *CheckoutService) GetSession(ctx context.Context, id string) (*provider.Session, bool) {
	if id == "" {
		return nil, false
	}
	session, err := s.provider.GetSession(ctx, id)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, provider.ErrSessionNotFound) {
			level = slog.LevelInfo
		}
		s.logger.Log(ctx, level, "error retrieving checkout session",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return session, true
}

// Confirm handles the return from the payment widget. A paid session clears
// the visitor's cart; anything else leaves it in place.
func (s *CheckoutService) Confirm(ctx context.Context, visitorID, sessionID string) (*Confirmation, error) {
	if visitorID == "" {
		return nil, apperrors.InvalidInput("visitor id is required")
	}
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	flow := domain.NewCheckoutFlow(domain.FlowPaymentWidgetShown)
	conf := &Confirmation{SessionID: sessionID, Flow: flow.State()}

	session, ok := s.GetSession(ctx, sessionID)
	if !ok {
		return conf, nil
	}

	booking := session.Booking()
	conf.DetailsAvailable = true
	conf.Status = session.Status
	conf.AmountTotal = session.AmountTotal
	conf.Currency = session.Currency
	conf.Booking = &booking

	if !session.Paid() {
		if session.Status == provider.SessionExpired {
			if err := flow.AdvanceAll(domain.FlowPaymentAbandoned, domain.FlowDetailsEntered); err != nil {
				return nil, err
			}
		}
		conf.Flow = flow.State()
		return conf, nil
	}

	conf.Paid = true
	if err := flow.Advance(domain.FlowPaymentSucceeded); err != nil {
		return nil, err
	}

	store := s.stores.For(visitorID)
	items, err := store.Items(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "could not read cart before clearing",
			slog.String("visitor_id", visitorID),
			slog.String("error", err.Error()),
		)
	}
	if err := store.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear cart after payment: %w", err)
	}
	conf.CartCleared = true
	if err := flow.AdvanceAll(domain.FlowCartCleared, domain.FlowConfirmationShown); err != nil {
		return nil, err
	}
	conf.Flow = flow.State()

	// Only the first return with a populated cart announces the booking.
	if len(items) > 0 {
		s.logger.InfoContext(ctx, "booking confirmed",
			slog.String("visitor_id", visitorID),
			slog.String("session_id", sessionID),
			slog.String("event_date", booking.EventDate),
		)
		if err := s.events.PublishBookingConfirmed(ctx, visitorID, session); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish booking.confirmed event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	return conf, nil
}
