package service

import (
	"context"
	"log/slog"

	"github.com/alexanderdross/V0-Desiree/internal/cartstore"
	"github.com/alexanderdross/V0-Desiree/internal/catalog"
	"github.com/alexanderdross/V0-Desiree/internal/domain"
	apperrors "github.com/alexanderdross/V0-Desiree/pkg/errors"
)

// AddItemInput references a catalog entry to add to the cart.
type AddItemInput struct {
	Category  string `json:"category" validate:"required"`
	ProductID string `json:"product_id" validate:"required,max=100"`
	Color     string `json:"color" validate:"max=50"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=1000"`
}

// UpdateQuantityInput holds the new quantity of a line. Zero or less removes it.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"lte=1000"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	stores  *cartstore.Factory
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(stores *cartstore.Factory, cat *catalog.Catalog, logger *slog.Logger) *CartService {
	return &CartService{
		stores:  stores,
		catalog: cat,
		logger:  logger,
	}
}

func (s *CartService) store(visitorID string) (*cartstore.Store, error) {
	if visitorID == "" {
		return nil, apperrors.InvalidInput("visitor id is required")
	}
	return s.stores.For(visitorID), nil
}

// GetCart returns the visitor's cart. A visitor without a slot gets an empty cart.
func (s *CartService) GetCart(ctx context.Context, visitorID string) (domain.Cart, error) {
	store, err := s.store(visitorID)
	if err != nil {
		return domain.Cart{}, err
	}
	return store.Cart(ctx)
}

// AddItem resolves the catalog reference and merges it into the cart.
func (s *CartService) AddItem(ctx context.Context, visitorID string, input AddItemInput) (domain.Cart, error) {
	store, err := s.store(visitorID)
	if err != nil {
		return domain.Cart{}, err
	}

	category, err := catalog.ParseCategory(input.Category)
	if err != nil {
		return domain.Cart{}, apperrors.InvalidInput(err.Error())
	}
	candidate, err := s.catalog.Resolve(category, input.ProductID, input.Color, input.Quantity)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := store.AddItem(ctx, candidate, candidate.Quantity); err != nil {
		return domain.Cart{}, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("visitor_id", visitorID),
		slog.String("item_id", candidate.ID),
		slog.Int("quantity", candidate.Quantity),
	)
	return store.Cart(ctx)
}

// UpdateQuantity sets the quantity of every line with itemID.
func (s *CartService) UpdateQuantity(ctx context.Context, visitorID, itemID string, quantity int) (domain.Cart, error) {
	store, err := s.store(visitorID)
	if err != nil {
		return domain.Cart{}, err
	}
	if itemID == "" {
		return domain.Cart{}, apperrors.InvalidInput("item id is required")
	}

	if err := store.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return domain.Cart{}, err
	}
	return store.Cart(ctx)
}

// RemoveItem drops every line with itemID.
func (s *CartService) RemoveItem(ctx context.Context, visitorID, itemID string) (domain.Cart, error) {
	store, err := s.store(visitorID)
	if err != nil {
		return domain.Cart{}, err
	}
	if itemID == "" {
		return domain.Cart{}, apperrors.InvalidInput("item id is required")
	}

	if err := store.RemoveItem(ctx, itemID); err != nil {
		return domain.Cart{}, err
	}
	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("visitor_id", visitorID),
		slog.String("item_id", itemID),
	)
	return store.Cart(ctx)
}

// ClearCart empties the visitor's cart.
func (s *CartService) ClearCart(ctx context.Context, visitorID string) error {
	store, err := s.store(visitorID)
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "cart cleared", slog.String("visitor_id", visitorID))
	return nil
}
