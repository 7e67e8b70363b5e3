package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/repository"
	"github.com/alexanderdross/V0-Desiree/pkg/database"
)

// DefaultSlotName is the key prefix used when none is configured.
const DefaultSlotName = "sol-social-cart"

// CartRepository implements repository.CartRepository using Redis. Each visitor
// owns one key holding the JSON array of line items.
type CartRepository struct {
	client   redis.Cmdable
	slotName string
	ttl      time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository. A zero ttl keeps
// slots until they are cleared.
func NewCartRepository(client redis.Cmdable, slotName string, ttl time.Duration) *CartRepository {
	if slotName == "" {
		slotName = DefaultSlotName
	}
	return &CartRepository{
		client:   client,
		slotName: slotName,
		ttl:      ttl,
	}
}

// Key returns the Redis key of a visitor's slot.
func (r *CartRepository) Key(visitorID string) string {
	return r.slotName + ":" + visitorID
}

// Load reads a visitor's slot from Redis.
func (r *CartRepository) Load(ctx context.Context, visitorID string) (items []domain.LineItem, err error) {
	key := r.Key(visitorID)
	ctx, end := database.TraceCommand(ctx, "GET", key)
	defer func() {
		if errors.Is(err, repository.ErrCorruptSlot) {
			end(nil)
			return
		}
		end(err)
	}()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get cart slot: %w", err)
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorruptSlot, err)
	}
	return items, nil
}

// Save persists the visitor's items with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, visitorID string, items []domain.LineItem) (err error) {
	key := r.Key(visitorID)
	ctx, end := database.TraceCommand(ctx, "SET", key)
	defer func() { end(err) }()

	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart slot: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart slot: %w", err)
	}
	return nil
}

// Delete removes the visitor's slot.
func (r *CartRepository) Delete(ctx context.Context, visitorID string) (err error) {
	key := r.Key(visitorID)
	ctx, end := database.TraceCommand(ctx, "DEL", key)
	defer func() { end(err) }()

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart slot: %w", err)
	}
	return nil
}
