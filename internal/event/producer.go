package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderdross/V0-Desiree/internal/cartstore"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/provider"
	pkgkafka "github.com/alexanderdross/V0-Desiree/pkg/kafka"
	"github.com/alexanderdross/V0-Desiree/pkg/logger"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated            = "solsocial.cart.updated"
	TopicCartCleared            = "solsocial.cart.cleared"
	TopicCheckoutSessionCreated = "solsocial.checkout.session_created"
	TopicBookingConfirmed       = "solsocial.booking.confirmed"
	TopicContactSubmitted       = "solsocial.contact.submitted"
)

// Aggregate type constants.
const (
	AggregateTypeCart    = "cart"
	AggregateTypeContact = "contact"
)

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	VisitorID  string            `json:"visitor_id"`
	Operation  string            `json:"operation"`
	ItemID     string            `json:"item_id,omitempty"`
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice int64             `json:"total_price"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	VisitorID string `json:"visitor_id"`
}

// CheckoutSessionCreatedData is the payload for a checkout.session_created event.
type CheckoutSessionCreatedData struct {
	VisitorID   string `json:"visitor_id"`
	SessionID   string `json:"session_id"`
	Provider    string `json:"provider"`
	AmountTotal int64  `json:"amount_total"`
	Currency    string `json:"currency"`
	TotalItems  int    `json:"total_items"`
	EventDate   string `json:"event_date"`
}

// BookingConfirmedData is the payload for a booking.confirmed event.
type BookingConfirmedData struct {
	VisitorID   string                `json:"visitor_id"`
	SessionID   string                `json:"session_id"`
	AmountTotal int64                 `json:"amount_total"`
	Currency    string                `json:"currency"`
	Booking     domain.BookingDetails `json:"booking"`
}

// Publisher is the part of the Kafka producer used here.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events. A nil publisher turns every
// method into a no-op, which is how the service runs without brokers.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// Enabled reports whether events are actually published.
func (p *Producer) Enabled() bool { return p != nil && p.kafka != nil }

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	if !p.Enabled() {
		return nil
	}

	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}
	if id := logger.VisitorIDFromContext(ctx); id != "" {
		event.WithMetadata("visitor_id", id)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// CartChanged implements cartstore.Observer. Publish failures are logged
// and never fail the cart mutation.
func (p *Producer) CartChanged(ctx context.Context, change cartstore.Change) error {
	var err error
	if change.Op == cartstore.OpClear {
		err = p.PublishCartCleared(ctx, change.VisitorID)
	} else {
		err = p.PublishCartUpdated(ctx, change)
	}
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to publish cart event",
			slog.String("visitor_id", change.VisitorID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, change cartstore.Change) error {
	return p.publish(ctx, TopicCartUpdated, change.VisitorID, AggregateTypeCart, CartUpdatedData{
		VisitorID:  change.VisitorID,
		Operation:  string(change.Op),
		ItemID:     change.ItemID,
		Items:      change.Items,
		TotalItems: change.TotalItems(),
		TotalPrice: change.TotalPrice(),
	})
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, visitorID string) error {
	return p.publish(ctx, TopicCartCleared, visitorID, AggregateTypeCart, CartClearedData{VisitorID: visitorID})
}

// PublishCheckoutSessionCreated publishes a checkout.session_created event.
func (p *Producer) PublishCheckoutSessionCreated(ctx context.Context, visitorID, providerName string, s *provider.Session, cart domain.Cart, booking domain.BookingDetails) error {
	return p.publish(ctx, TopicCheckoutSessionCreated, visitorID, AggregateTypeCart, CheckoutSessionCreatedData{
		VisitorID:   visitorID,
		SessionID:   s.ID,
		Provider:    providerName,
		AmountTotal: s.AmountTotal,
		Currency:    s.Currency,
		TotalItems:  cart.TotalItems(),
		EventDate:   booking.EventDate,
	})
}

// PublishBookingConfirmed publishes a booking.confirmed event.
func (p *Producer) PublishBookingConfirmed(ctx context.Context, visitorID string, s *provider.Session) error {
	return p.publish(ctx, TopicBookingConfirmed, visitorID, AggregateTypeCart, BookingConfirmedData{
		VisitorID:   visitorID,
		SessionID:   s.ID,
		AmountTotal: s.AmountTotal,
		Currency:    s.Currency,
		Booking:     s.Booking(),
	})
}

// PublishContactSubmitted publishes a contact.submitted event keyed by email.
func (p *Producer) PublishContactSubmitted(ctx context.Context, submission domain.ContactSubmission) error {
	return p.publish(ctx, TopicContactSubmitted, submission.Email, AggregateTypeContact, submission)
}
