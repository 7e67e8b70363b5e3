package cartstore

import (
	"context"
	"fmt"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/repository"
)

// Op names the mutation that produced a Change.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
)

// Change is delivered to observers after every effective mutation. Items is a
// snapshot of the cart after the change.
type Change struct {
	Op        Op
	VisitorID string
	ItemID    string
	Items     []domain.LineItem
}

// TotalPrice of the cart after the change.
func (c Change) TotalPrice() int64 { return domain.TotalPrice(c.Items) }

// TotalItems of the cart after the change.
func (c Change) TotalItems() int { return domain.TotalItems(c.Items) }

// Observer reacts to cart changes.
type Observer interface {
	CartChanged(ctx context.Context, change Change) error
}

// Persister writes every change through to the visitor's slot.
type Persister struct {
	repo repository.CartRepository
}

// NewPersister creates a persistence observer backed by repo.
func NewPersister(repo repository.CartRepository) *Persister {
	return &Persister{repo: repo}
}

// CartChanged saves the snapshot, or erases the slot on clear.
func (p *Persister) CartChanged(ctx context.Context, change Change) error {
	if change.Op == OpClear {
		if err := p.repo.Delete(ctx, change.VisitorID); err != nil {
			return fmt.Errorf("erase cart slot: %w", err)
		}
		return nil
	}
	if err := p.repo.Save(ctx, change.VisitorID, change.Items); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}
