package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderdross/V0-Desiree/internal/domain"
	"github.com/alexanderdross/V0-Desiree/internal/event"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

func newTestCartService(t *testing.T) (*CartService, *fixture) {
	f := newFixture(t)
	return NewCartService(f.stores, f.catalog, newTestLogger()), f
}

// ============================================================================
// GetCart
// ============================================================================

func TestGetCart_EmptyForNewVisitor(t *testing.T) {
	svc, _ := newTestCartService(t)

	cart, err := svc.GetCart(context.Background(), "visitor-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "visitor-1", cart.VisitorID)
}

func TestGetCart_RequiresVisitor(t *testing.T) {
	svc, _ := newTestCartService(t)
	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// ============================================================================
// AddItem
// ============================================================================

func TestAddItem_FromCatalog(t *testing.T) {
	svc, f := newTestCartService(t)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "carts", ProductID: "classic-white", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(150), cart.TotalPrice())
	assert.Equal(t, 1, cart.TotalItems())

	assert.Len(t, f.repo.get("visitor-1"), 1)
	assert.Equal(t, 1, f.published(event.TopicCartUpdated))
}

func TestAddItem_MergesAcrossRequests(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "carts", ProductID: "classic-white", Quantity: 1})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "carts", ProductID: "classic-white", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, int64(450), cart.TotalPrice())
}

func TestAddItem_EquipmentColors(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "equipment", ProductID: "beach-umbrella", Color: "Blue"})
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "equipment", ProductID: "beach-umbrella", Color: "White"})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	_, err = svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "equipment", ProductID: "beach-umbrella"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAddItem_Errors(t *testing.T) {
	svc, f := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "tents", ProductID: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "carts", ProductID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "carts", ProductID: "classic-white", Quantity: -2})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	assert.Empty(t, f.repo.get("visitor-1"))
}

// ============================================================================
// UpdateQuantity / RemoveItem / ClearCart
// ============================================================================

func TestUpdateQuantity(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "carts", ProductID: "classic-white"})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(ctx, "visitor-1", "classic-white", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.TotalItems())

	cart, err = svc.UpdateQuantity(ctx, "visitor-1", "classic-white", 0)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantity_RequiresItemID(t *testing.T) {
	svc, _ := newTestCartService(t)
	_, err := svc.UpdateQuantity(context.Background(), "visitor-1", "", 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestRemoveItem_RemovesAllColorsSharingID(t *testing.T) {
	svc, f := newTestCartService(t)
	ctx := context.Background()

	f.repo.slots["visitor-1"] = []domain.LineItem{
		{ID: "market-umbrella", Name: "Market Umbrella (White)", Price: 30, Quantity: 1, Kind: domain.KindEquipment, Variant: "White"},
		{ID: "market-umbrella", Name: "Market Umbrella (Sage)", Price: 30, Quantity: 1, Kind: domain.KindEquipment, Variant: "Sage"},
		{ID: "classic-white", Price: 150, Quantity: 1, Kind: domain.KindCart},
	}

	cart, err := svc.RemoveItem(ctx, "visitor-1", "market-umbrella")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "classic-white", cart.Items[0].ID)
}

func TestClearCart(t *testing.T) {
	svc, f := newTestCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "visitor-1", AddItemInput{Category: "packages", ProductID: "beach-bash"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, "visitor-1"))
	_, exists := f.repo.slots["visitor-1"]
	assert.False(t, exists)
	assert.Equal(t, 1, f.published(event.TopicCartCleared))
}

func TestCartService_StorageErrorSurfaces(t *testing.T) {
	svc, f := newTestCartService(t)
	f.repo.loadErr = assert.AnError

	_, err := svc.GetCart(context.Background(), "visitor-1")
	require.ErrorIs(t, err, assert.AnError)
}
