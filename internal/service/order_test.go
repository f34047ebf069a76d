package service

import (
	"context"
	"testing"

	"github.com/atletia/storefront/internal/invoice"
	"github.com/atletia/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	order        *models.Order
	updateCalls  int
	updateStatus string
}

func (fr *fakeOrderRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if fr.order == nil || fr.order.ID != id {
		return nil, models.ErrDataNotFound
	}
	return fr.order, nil
}

func (fr *fakeOrderRepo) GetOrdersByUserID(_ context.Context, _ uuid.UUID) ([]models.Order, error) {
	if fr.order == nil {
		return nil, nil
	}
	return []models.Order{*fr.order}, nil
}

func (fr *fakeOrderRepo) GetOrders(_ context.Context) ([]models.Order, error) {
	if fr.order == nil {
		return nil, nil
	}
	return []models.Order{*fr.order}, nil
}

func (fr *fakeOrderRepo) UpdateOrderStatus(_ context.Context, _ uuid.UUID, status string, _ *string) error {
	fr.updateCalls++
	fr.updateStatus = status
	return nil
}

func TestOrderService_GetUserOrder(t *testing.T) {
	owner := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	stranger := uuid.MustParse("fa5de239-4b9e-47c1-b1a6-5d8e9b2c3f40")
	orderID := uuid.MustParse("d2719f3a-88a1-4f4b-9d5c-67f2a4b1c3e5")

	repo := &fakeOrderRepo{order: &models.Order{ID: orderID, UserID: owner, Status: models.OrderStatusCompleted}}
	os := NewOrderService(repo, &invoice.TextRenderer{StoreName: "Atletia"})

	t.Run("owner_reads_order", func(t *testing.T) {
		order, err := os.GetUserOrder(context.Background(), owner, orderID)
		require.NoError(t, err)
		assert.Equal(t, orderID, order.ID)
	})

	t.Run("foreign_order_reads_as_not_found", func(t *testing.T) {
		_, err := os.GetUserOrder(context.Background(), stranger, orderID)
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderID := uuid.MustParse("d2719f3a-88a1-4f4b-9d5c-67f2a4b1c3e5")

	t.Run("normalizes_case_and_whitespace", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		os := NewOrderService(repo, &invoice.TextRenderer{})

		err := os.UpdateStatus(context.Background(), orderID, "  Shipped ")
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, repo.updateStatus)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		repo := &fakeOrderRepo{}
		os := NewOrderService(repo, &invoice.TextRenderer{})

		err := os.UpdateStatus(context.Background(), orderID, "teleported")
		assert.ErrorIs(t, err, models.ErrInvalidStatus)
		assert.Zero(t, repo.updateCalls)
	})
}

func TestOrderService_Invoice(t *testing.T) {
	owner := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	orderID := uuid.MustParse("d2719f3a-88a1-4f4b-9d5c-67f2a4b1c3e5")

	repo := &fakeOrderRepo{order: &models.Order{
		ID:     orderID,
		UserID: owner,
		Status: models.OrderStatusCompleted,
		Total:  19990,
	}}
	os := NewOrderService(repo, &invoice.TextRenderer{StoreName: "Atletia"})

	doc, contentType, err := os.Invoice(context.Background(), owner, orderID)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	assert.Contains(t, string(doc), orderID.String())
}
