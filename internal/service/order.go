package service

import (
	"context"
	"strings"

	"github.com/atletia/storefront/internal/invoice"
	"github.com/atletia/storefront/internal/models"
	"github.com/google/uuid"
)

// OrderRepository is interface for reading and administering orders
type OrderRepository interface {
	// GetOrderByID returns order with its items
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetOrdersByUserID gets user orders
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// GetOrders returns all orders
	GetOrders(ctx context.Context) ([]models.Order, error)
	// UpdateOrderStatus updates order status
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string, paymentIntent *string) error
}

// OrderService implements order history and admin order management
type OrderService struct {
	repo     OrderRepository
	renderer invoice.Renderer
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, renderer invoice.Renderer) *OrderService {
	return &OrderService{
		repo:     repo,
		renderer: renderer,
	}
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return os.repo.GetOrdersByUserID(ctx, userID)
}

// GetUserOrder returns one order owned by the user. An order belonging to
// someone else reads as not found.
func (os *OrderService) GetUserOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrDataNotFound
	}
	return order, nil
}

// ListOrders returns all orders for the back office
func (os *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return os.repo.GetOrders(ctx)
}

// UpdateStatus normalizes and validates a status against the canonical enum
// before persisting. Status update is a set, not an increment: repeating the
// same update is harmless.
func (os *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidOrderStatus(status) {
		return models.ErrInvalidStatus
	}
	return os.repo.UpdateOrderStatus(ctx, orderID, status, nil)
}

// Invoice renders the invoice document for a user's order
func (os *OrderService) Invoice(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) ([]byte, string, error) {
	order, err := os.GetUserOrder(ctx, userID, orderID)
	if err != nil {
		return nil, "", err
	}
	return os.renderer.Render(order)
}
