package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestNewEvent_Fields(t *testing.T) {
	type cartUpdated struct {
		TotalItems int   `json:"total_items"`
		TotalPrice int64 `json:"total_price"`
	}

	data := cartUpdated{TotalItems: 2, TotalPrice: 300}
	event, err := NewEvent("cart.updated", "visitor-1", "cart", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "cart.updated", event.EventType)
	assert.Equal(t, "visitor-1", event.AggregateID)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got cartUpdated
	require.NoError(t, json.Unmarshal(event.Data, &got))
	assert.Equal(t, data, got)
}

func TestNewEvent_InvalidData(t *testing.T) {
	_, err := NewEvent("cart.updated", "v", "cart", "storefront", make(chan int))
	require.Error(t, err)
}

func TestEvent_MessageRoundTrip(t *testing.T) {
	event, err := NewEvent("booking.confirmed", "visitor-9", "cart", "storefront", nil)
	require.NoError(t, err)

	assert.Same(t, event, event.WithCorrelationID("corr-1").WithMetadata("provider", "stripe"))

	msg, err := event.Message("solsocial.booking.confirmed")
	require.NoError(t, err)
	assert.Equal(t, "visitor-9", string(msg.Key))
	assert.Equal(t, "storefront", header(msg, HeaderSource))

	var restored Event
	require.NoError(t, json.Unmarshal(msg.Value, &restored))
	assert.Equal(t, "corr-1", restored.CorrelationID)
	assert.Equal(t, "stripe", restored.Metadata["provider"])
}

func TestProducer_PublishWritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, logger: quietLogger()}

	event, err := NewEvent("contact.submitted", "ana@example.com", "contact", "storefront", map[string]string{"firstName": "Ana"})
	require.NoError(t, err)
	event.WithCorrelationID("corr-7")

	require.NoError(t, p.Publish(context.Background(), "storefront.contact", event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "storefront.contact", msg.Topic)
	assert.Equal(t, "ana@example.com", string(msg.Key))
	assert.Equal(t, "contact.submitted", header(msg, "event_type"))
	assert.Equal(t, "corr-7", header(msg, "correlation_id"))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)
}

func TestProducer_PublishError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("leader not available")}, logger: quietLogger()}
	event, _ := NewEvent("cart.cleared", "v", "cart", "storefront", nil)

	err := p.Publish(context.Background(), "storefront.cart", event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storefront.cart")
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, logger: quietLogger()}
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPingBrokers_NoBrokers(t *testing.T) {
	assert.Error(t, PingBrokers(context.Background(), nil))
}

func TestDefaultProducerConfig(t *testing.T) {
	cfg := DefaultProducerConfig([]string{"localhost:9092"})
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.False(t, cfg.Async)
}
