package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/atletia/storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderService is interface for order-history requests
type OrderService interface {
	// ListUserOrders returns list of user orders
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// GetUserOrder returns one order owned by the user
	GetUserOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*models.Order, error)
	// Invoice renders the invoice document for a user's order
	Invoice(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) ([]byte, string, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Price     int64  `json:"price"`
}

type orderResponse struct {
	ID              string                  `json:"id"`
	Status          string                  `json:"status"`
	Total           int64                   `json:"total"`
	ShippingAddress *models.ShippingAddress `json:"shipping_address,omitempty"`
	PaymentIntent   *string                 `json:"payment_intent,omitempty"`
	CreatedAt       string                  `json:"created_at"`
	Items           []orderItemResponse     `json:"items,omitempty"`
}

func toOrderResponse(o models.Order) orderResponse {
	resp := orderResponse{
		ID:              o.ID.String(),
		Status:          o.Status,
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		PaymentIntent:   o.PaymentIntent,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}

// ListUserOrders returns the user's order history, newest first
// 200 — order list
// 204 — no orders yet
// 401 — user is not authenticated
// 500 — internal error
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, toOrderResponse(o))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// GetUserOrder returns one order with its items
// 200 — order
// 400 — invalid id
// 401 — user is not authenticated
// 404 — no such order for this user
// 500 — internal error
func (oh *OrderHandler) GetUserOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		order, err := oh.svc.GetUserOrder(r.Context(), payload.UserID, orderID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toOrderResponse(*order)); err != nil {
			return
		}
	}
}

// GetInvoice streams the rendered invoice document for an order
// 200 — document
// 400 — invalid id
// 401 — user is not authenticated
// 404 — no such order for this user
// 500 — internal error
func (oh *OrderHandler) GetInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		doc, contentType, err := oh.svc.Invoice(r.Context(), payload.UserID, orderID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	}
}
