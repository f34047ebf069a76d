package service

import (
	"context"

	"github.com/atletia/storefront/internal/models"
	"github.com/google/uuid"
)

// CartRepository is interface for the per-user cart storage
type CartRepository interface {
	// AddItem adds an item, merging quantity with an existing line
	AddItem(ctx context.Context, userID string, item models.CartItem) error
	// UpdateQuantity sets a line quantity; zero or negative removes it
	UpdateQuantity(ctx context.Context, userID string, productID string, quantity int32) error
	// RemoveItem removes a cart line
	RemoveItem(ctx context.Context, userID string, productID string) error
	// Clear drops the whole cart
	Clear(ctx context.Context, userID string) error
	// Items returns all cart lines
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
}

// ProductGetter is interface for product lookup
type ProductGetter interface {
	// GetProductByID returns product by id
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CartService manages the per-user cart. Lines snapshot the product name and
// prices at the moment they are added; the catalog is not re-read later.
type CartService struct {
	store    CartRepository
	products ProductGetter
}

// NewCartService creates new CartService instance
func NewCartService(store CartRepository, products ProductGetter) *CartService {
	return &CartService{
		store:    store,
		products: products,
	}
}

// AddItem resolves the product and adds a snapshot line to the cart
func (cs *CartService) AddItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int32) (*models.CartItem, error) {
	if quantity <= 0 {
		quantity = 1
	}

	product, err := cs.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
		SalePrice: product.SalePrice,
		Quantity:  quantity,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	if err := cs.store.AddItem(ctx, userID.String(), item); err != nil {
		return nil, err
	}

	return &item, nil
}

// UpdateQuantity sets a cart line quantity
func (cs *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int32) error {
	return cs.store.UpdateQuantity(ctx, userID.String(), productID, quantity)
}

// RemoveItem removes a cart line
func (cs *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error {
	return cs.store.RemoveItem(ctx, userID.String(), productID)
}

// Clear drops the whole cart
func (cs *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return cs.store.Clear(ctx, userID.String())
}

// Items returns cart lines and their total
func (cs *CartService) Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, int64, error) {
	items, err := cs.store.Items(ctx, userID.String())
	if err != nil {
		return nil, 0, err
	}
	return items, models.CartTotal(items), nil
}
