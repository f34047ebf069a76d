package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/atletia/storefront/internal/models"
	"github.com/atletia/storefront/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (user_id, status, total, shipping_address)
						VALUES ($1, $2, $3, $4)
						RETURNING id, created_at
`
	insertOrderItemQuery = `
						INSERT INTO order_items (order_id, product_id, quantity, price)
						VALUES ($1, $2, $3, $4)
`
	selectOrderByIDQuery = `
						SELECT id, user_id, status, total, shipping_address, payment_intent, created_at, updated_at FROM orders
						WHERE id = $1
`
	selectOrdersByUserIDQuery = `
						SELECT id, user_id, status, total, shipping_address, payment_intent, created_at, updated_at FROM orders
						WHERE user_id = $1
						ORDER BY created_at DESC
`
	selectAllOrdersQuery = `
						SELECT id, user_id, status, total, shipping_address, payment_intent, created_at, updated_at FROM orders
						ORDER BY created_at DESC
`
	selectOrderItemsQuery = `
						SELECT id, order_id, product_id, quantity, price, created_at FROM order_items
						WHERE order_id = $1
`
	updateOrderStatusQuery = `
						UPDATE orders
						SET status = $1, payment_intent = COALESCE($2, payment_intent), updated_at = now()
						WHERE id = $3
`
	updateOrderStatusByRefQuery = `
						UPDATE orders
						SET status = $1, payment_intent = COALESCE($2, payment_intent), updated_at = now()
						WHERE id::text LIKE $3 || '%'
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts order and its items in a single transaction. Either
// everything is written or nothing is.
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) (*models.Order, error) {
	addr, err := marshalAddress(order.ShippingAddress)
	if err != nil {
		return nil, err
	}

	tx, err := or.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertOrderQuery, order.UserID, order.Status, order.Total, addr).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = order.ID
		if _, err := tx.Exec(ctx, insertOrderItemQuery, order.ID, items[i].ProductID, items[i].Quantity, items[i].Price); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.Items = items
	return order, nil
}

// GetOrderByID returns order with its items
func (or *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := or.scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, id))
	if err != nil {
		return nil, err
	}

	items, err := or.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetOrdersByUserID gets user orders, newest first
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return or.selectOrders(ctx, selectOrdersByUserIDQuery, userID)
}

// GetOrders returns all orders, newest first
func (or *OrderRepository) GetOrders(ctx context.Context) ([]models.Order, error) {
	return or.selectOrders(ctx, selectAllOrdersQuery)
}

// UpdateOrderStatus updates order status; a non-nil paymentIntent is attached,
// nil leaves the stored one untouched.
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string, paymentIntent *string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, status, paymentIntent, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// UpdateOrderStatusByBuyOrder resolves an order from the gateway buy_order
// reference. The reference is the order id truncated to 26 characters, so the
// lookup is a prefix match on the id.
func (or *OrderRepository) UpdateOrderStatusByBuyOrder(ctx context.Context, buyOrder string, status string, paymentIntent *string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusByRefQuery, status, paymentIntent, buyOrder)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

func (or *OrderRepository) selectOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order, err := or.scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (or *OrderRepository) getOrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := or.db.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}

	for rows.Next() {
		item := models.OrderItem{}
		err = rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (or *OrderRepository) scanOrder(row pgx.Row) (*models.Order, error) {
	order := models.Order{}
	var addr []byte
	err := row.Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &addr, &order.PaymentIntent, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	if len(addr) > 0 {
		shipping := models.ShippingAddress{}
		if err := json.Unmarshal(addr, &shipping); err != nil {
			return nil, err
		}
		order.ShippingAddress = &shipping
	}

	return &order, nil
}

func marshalAddress(addr *models.ShippingAddress) ([]byte, error) {
	if addr == nil {
		return nil, nil
	}
	return json.Marshal(addr)
}
