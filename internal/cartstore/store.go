// Package cartstore holds the per-visitor cart state machine.
package cartstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/repository"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
	"github.com/alexanderdross/V0-Desiree/pkg/logger"
)

// Store is one visitor's cart. It hydrates lazily from the slot on first use
// and notifies its observers after every effective mutation.
type Store struct {
	visitorID string
	loader    repository.CartRepository
	observers []Observer
	logger    *slog.Logger

	mu       sync.Mutex
	hydrated bool
	items    []domain.LineItem
}

// New creates a store for visitorID that hydrates through loader.
func New(visitorID string, loader repository.CartRepository, log *slog.Logger, observers ...Observer) *Store {
	return &Store{
		visitorID: visitorID,
		loader:    loader,
		observers: observers,
		logger:    log,
	}
}

// VisitorID returns the owner of the store.
func (s *Store) VisitorID() string { return s.visitorID }

func (s *Store) log(ctx context.Context) *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return logger.FromContext(ctx)
}

// hydrate must be called with s.mu held.
func (s *Store) hydrate(ctx context.Context) error {
	if s.hydrated {
		return nil
	}

	items, err := s.loader.Load(ctx, s.visitorID)
	switch {
	case errors.Is(err, repository.ErrCorruptSlot):
		corruptSlotsTotal.Inc()
		s.log(ctx).WarnContext(ctx, "cart slot is corrupt, starting empty",
			slog.String("visitor_id", s.visitorID),
			slog.String("error", err.Error()),
		)
		items = nil
	case err != nil:
		hydrationErrorsTotal.Inc()
		return fmt.Errorf("hydrate cart: %w", err)
	}

	s.items = s.sanitize(ctx, items)
	s.hydrated = true
	return nil
}

// sanitize drops lines that violate the line item invariants.
func (s *Store) sanitize(ctx context.Context, items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, 0, len(items))
	dropped := 0
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 || item.Price < 0 {
			dropped++
			continue
		}
		if i := domain.FindIndex(out, item.ID, item.Variant); i >= 0 {
			out[i].Quantity += item.Quantity
			continue
		}
		out = append(out, item)
	}
	if dropped > 0 {
		s.log(ctx).WarnContext(ctx, "dropped invalid cart lines from slot",
			slog.String("visitor_id", s.visitorID),
			slog.Int("dropped", dropped),
		)
	}
	return out
}

func (s *Store) snapshot() []domain.LineItem {
	return slices.Clone(s.items)
}

// notify must be called with s.mu held. Observers run in order and the first
// failure stops the fan-out, so nothing downstream of the Persister sees a
// change that was never written.
func (s *Store) notify(ctx context.Context, op Op, itemID string) error {
	mutationsTotal.WithLabelValues(string(op)).Inc()

	change := Change{
		Op:        op,
		VisitorID: s.visitorID,
		ItemID:    itemID,
		Items:     s.snapshot(),
	}
	for _, o := range s.observers {
		if err := o.CartChanged(ctx, change); err != nil {
			return err
		}
	}
	return nil
}

// AddItem merges candidate into the cart. A line with the same id and variant
// has its quantity increased; otherwise a new line is appended. A zero
// quantity counts as one.
func (s *Store) AddItem(ctx context.Context, candidate domain.LineItem, quantity int) error {
	if candidate.ID == "" {
		return apperrors.InvalidInput("item id is required")
	}
	if quantity < 0 {
		return apperrors.InvalidInput("quantity must not be negative")
	}
	if candidate.Price < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	if candidate.Kind != "" && !candidate.Kind.Valid() {
		return apperrors.InvalidInput(fmt.Sprintf("unknown item type %q", candidate.Kind))
	}
	if quantity == 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrate(ctx); err != nil {
		return err
	}

	if i := domain.FindIndex(s.items, candidate.ID, candidate.Variant); i >= 0 {
		s.items[i].Quantity += quantity
	} else {
		candidate.Quantity = quantity
		s.items = append(s.items, candidate)
	}
	return s.notify(ctx, OpAdd, candidate.ID)
}

// RemoveItem drops every line with the given id, whatever its variant.
// Removing an absent id changes nothing and notifies no one.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrate(ctx); err != nil {
		return err
	}
	return s.removeLocked(ctx, id)
}

func (s *Store) removeLocked(ctx context.Context, id string) error {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(item domain.LineItem) bool {
		return item.ID == id
	})
	if len(s.items) == before {
		return nil
	}
	return s.notify(ctx, OpRemove, id)
}

// UpdateQuantity sets the quantity of every line with the given id. A
// quantity of zero or less removes them.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrate(ctx); err != nil {
		return err
	}

	if quantity <= 0 {
		return s.removeLocked(ctx, id)
	}

	changed := false
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Quantity != quantity {
			s.items[i].Quantity = quantity
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.notify(ctx, OpUpdate, id)
}

// Clear empties the cart and erases its slot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clearing does not depend on the previous contents, so no read is needed.
	s.hydrated = true
	s.items = nil
	return s.notify(ctx, OpClear, "")
}

// Items returns a copy of the current lines.
func (s *Store) Items(ctx context.Context) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

// Cart returns a snapshot of the cart.
func (s *Store) Cart(ctx context.Context) (domain.Cart, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.Cart{VisitorID: s.visitorID, Items: items}, nil
}

// TotalPrice sums price times quantity over the current lines.
func (s *Store) TotalPrice(ctx context.Context) (int64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return domain.TotalPrice(items), nil
}

// TotalItems sums the quantities of the current lines.
func (s *Store) TotalItems(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return domain.TotalItems(items), nil
}
