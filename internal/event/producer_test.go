package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexanderdross/V0-Desiree/internal/cartstore"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/provider"
	pkgkafka "github.com/alexanderdross/V0-Desiree/pkg/kafka"
	"github.com/alexanderdross/V0-Desiree/pkg/logger"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event *pkgkafka.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCartChanged_PublishesUpdated(t *testing.T) {
	pub := new(mockPublisher)
	var got *pkgkafka.Event
	pub.On("Publish", mock.Anything, TopicCartUpdated, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(*pkgkafka.Event) }).
		Return(nil)
	p := NewProducer(pub, quietLogger())

	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	err := p.CartChanged(ctx, cartstore.Change{
		Op:        cartstore.OpAdd,
		VisitorID: "visitor-1",
		ItemID:    "classic-white",
		Items:     []domain.LineItem{{ID: "classic-white", Price: 150, Quantity: 2}},
	})
	require.NoError(t, err)
	pub.AssertExpectations(t)

	require.NotNil(t, got)
	assert.Equal(t, "visitor-1", got.AggregateID)
	assert.Equal(t, "corr-1", got.CorrelationID)
	assert.Equal(t, SourceStorefront, got.Source)

	var data CartUpdatedData
	require.NoError(t, json.Unmarshal(got.Data, &data))
	assert.Equal(t, int64(300), data.TotalPrice)
	assert.Equal(t, 2, data.TotalItems)
	assert.Equal(t, "add", data.Operation)
}

func TestCartChanged_ClearPublishesCleared(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, TopicCartCleared, mock.Anything).Return(nil)
	p := NewProducer(pub, quietLogger())

	require.NoError(t, p.CartChanged(context.Background(), cartstore.Change{Op: cartstore.OpClear, VisitorID: "v"}))
	pub.AssertExpectations(t)
}

func TestCartChanged_PublishErrorIsSwallowed(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))
	p := NewProducer(pub, quietLogger())

	assert.NoError(t, p.CartChanged(context.Background(), cartstore.Change{Op: cartstore.OpAdd, VisitorID: "v"}))
}

func TestProducer_NilPublisherIsNoop(t *testing.T) {
	p := NewProducer(nil, quietLogger())
	assert.False(t, p.Enabled())
	assert.NoError(t, p.PublishCartCleared(context.Background(), "v"))
	assert.NoError(t, p.PublishContactSubmitted(context.Background(), domain.ContactSubmission{}))

	var nilProducer *Producer
	assert.False(t, nilProducer.Enabled())
}

func TestPublishErrorsAreWrapped(t *testing.T) {
	pub := new(mockPublisher)
	pub.On("Publish", mock.Anything, TopicBookingConfirmed, mock.Anything).Return(errors.New("broker down"))
	p := NewProducer(pub, quietLogger())

	err := p.PublishBookingConfirmed(context.Background(), "v", &provider.Session{ID: "cs_1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), TopicBookingConfirmed)
}

func TestPublishCheckoutAndContact(t *testing.T) {
	pub := new(mockPublisher)
	var events []*pkgkafka.Event
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { events = append(events, args.Get(2).(*pkgkafka.Event)) }).
		Return(nil)
	p := NewProducer(pub, quietLogger())
	ctx := logger.WithVisitorID(context.Background(), "v")

	s := &provider.Session{ID: "cs_1", AmountTotal: 15000, Currency: "usd"}
	cart := domain.Cart{Items: []domain.LineItem{{ID: "classic-white", Price: 150, Quantity: 1}}}
	require.NoError(t, p.PublishCheckoutSessionCreated(ctx, "v", "mock", s, cart, domain.BookingDetails{EventDate: "2026-06-20"}))
	require.NoError(t, p.PublishContactSubmitted(ctx, domain.ContactSubmission{Email: "a@example.com", VerifiedAt: time.Now()}))

	require.Len(t, events, 2)
	var created CheckoutSessionCreatedData
	require.NoError(t, json.Unmarshal(events[0].Data, &created))
	assert.Equal(t, "cs_1", created.SessionID)
	assert.Equal(t, "2026-06-20", created.EventDate)
	assert.Equal(t, 1, created.TotalItems)

	assert.Equal(t, TopicContactSubmitted, events[1].EventType)
	assert.Equal(t, "a@example.com", events[1].AggregateID)
	assert.Equal(t, AggregateTypeContact, events[1].AggregateType)
	assert.Equal(t, "v", events[1].Metadata["visitor_id"])
}
