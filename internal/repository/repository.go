package repository

import (
	"context"
	"errors"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
)

// ErrCorruptSlot is returned by Load when the stored slot cannot be decoded.
var ErrCorruptSlot = errors.New("corrupt cart slot")

// CartRepository defines the persistence operations for a visitor's cart slot.
type CartRepository interface {
	// Load reads the slot. A missing slot yields nil items and no error.
	Load(ctx context.Context, visitorID string) ([]domain.LineItem, error)

	// Save overwrites the slot with items.
	Save(ctx context.Context, visitorID string, items []domain.LineItem) error

	// Delete erases the slot.
	Delete(ctx context.Context, visitorID string) error
}
