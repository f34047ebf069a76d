package service

import (
	"context"

	"github.com/atletia/storefront/internal/metrics"
	"github.com/atletia/storefront/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutOrderRepository is interface for interacting with order-related data
type CheckoutOrderRepository interface {
	// CreateOrder inserts order and its items in a single transaction
	CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error)
	// UpdateOrderStatus updates order status, attaching paymentIntent when non-nil
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string, paymentIntent *string) error
	// UpdateOrderStatusByBuyOrder resolves the order from the gateway buy_order reference
	UpdateOrderStatusByBuyOrder(ctx context.Context, buyOrder string, status string, paymentIntent *string) error
}

// CheckoutCartStore is interface for the per-user cart
type CheckoutCartStore interface {
	// Items returns all cart lines for a user
	Items(ctx context.Context, userID string) ([]models.CartItem, error)
	// Clear drops the whole cart; clearing an empty cart is a no-op
	Clear(ctx context.Context, userID string) error
}

// PaymentProvider is interface for the transaction relay
type PaymentProvider interface {
	// CreateTransaction registers a gateway transaction
	CreateTransaction(ctx context.Context, amount float64, orderID string) (*models.TransactionInit, error)
	// ConfirmTransaction commits a gateway transaction
	ConfirmTransaction(ctx context.Context, token string) (*models.PaymentResult, error)
}

// CheckoutService drives the cart-to-confirmed-order flow across the order
// store and the payment gateway. It holds no state of its own between calls;
// everything in flight lives in the cart and the order row.
type CheckoutService struct {
	orders   CheckoutOrderRepository
	cart     CheckoutCartStore
	payments PaymentProvider
	metrics  *metrics.StoreMetrics
	logger   *zap.Logger
}

// NewCheckoutService creates new CheckoutService instance
func NewCheckoutService(orders CheckoutOrderRepository, cart CheckoutCartStore, payments PaymentProvider, m *metrics.StoreMetrics, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		cart:     cart,
		payments: payments,
		metrics:  m,
		logger:   logger,
	}
}

// CreateTransaction starts a checkout: it snapshots the cart into a pending
// order, registers a gateway transaction for the cart total, attaches the
// issued token to the order and moves it to processing. The caller must then
// hand the browser off to the returned URL with a form POST carrying
// TBK_TOKEN.
//
// Order creation failure aborts the flow before any gateway call is made.
// Later failures surface to the caller with the order left in whatever status
// was last durably written; nothing is rolled back.
func (cs *CheckoutService) CreateTransaction(ctx context.Context, userID uuid.UUID, shipping models.ShippingAddress) (*models.CheckoutRedirect, error) {
	items, err := cs.cart.Items(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrCartEmpty
	}

	total := models.CartTotal(items)

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice(),
		})
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		Total:           total,
		ShippingAddress: &shipping,
	}

	order, err = cs.orders.CreateOrder(ctx, order, orderItems)
	if err != nil {
		// fail closed: no money movement is attempted without a durable order
		return nil, err
	}
	if cs.metrics != nil {
		cs.metrics.OrdersCreatedTotal.Inc()
	}

	init, err := cs.payments.CreateTransaction(ctx, float64(total), order.ID.String())
	if err != nil {
		return nil, err
	}

	if err := cs.orders.UpdateOrderStatus(ctx, order.ID, models.OrderStatusProcessing, &init.Token); err != nil {
		return nil, err
	}

	return &models.CheckoutRedirect{
		OrderID:   order.ID,
		URL:       init.URL,
		Token:     init.Token,
		BuyOrder:  init.BuyOrder,
		SessionID: init.SessionID,
	}, nil
}

// ConfirmTransaction finishes a checkout after the browser returns from the
// gateway with a token. On approval the cart is cleared and the order is
// moved to completed; the completion update is best-effort because the
// gateway, not the local store, is the source of truth for money movement.
// On rejection nothing is touched. The call is safe to repeat for the same
// token and reports the same outcome.
func (cs *CheckoutService) ConfirmTransaction(ctx context.Context, userID uuid.UUID, token string) (*models.PaymentResult, error) {
	if token == "" {
		return nil, models.ErrMissingToken
	}

	result, err := cs.payments.ConfirmTransaction(ctx, token)
	if err != nil {
		if cs.metrics != nil {
			cs.metrics.PaymentErrorsTotal.Inc()
		}
		return nil, err
	}

	if !result.Success {
		// payment declined: a normal outcome, cart and order stay as they are
		if cs.metrics != nil {
			cs.metrics.PaymentsRejectedTotal.Inc()
		}
		return result, nil
	}

	if cs.metrics != nil {
		cs.metrics.PaymentsApprovedTotal.Inc()
	}

	if err := cs.cart.Clear(ctx, userID.String()); err != nil {
		cs.logger.Warn("failed to clear cart after payment", zap.String("user_id", userID.String()), zap.Error(err))
	}

	if result.BuyOrder != "" {
		err := cs.orders.UpdateOrderStatusByBuyOrder(ctx, result.BuyOrder, models.OrderStatusCompleted, &token)
		if err != nil {
			// the payment already happened at the gateway, so the local
			// bookkeeping failure is logged and the success still stands
			cs.logger.Warn("failed to mark order completed",
				zap.String("buy_order", result.BuyOrder), zap.Error(err))
		} else if cs.metrics != nil {
			cs.metrics.OrdersCompletedTotal.Inc()
		}
	}

	return result, nil
}
