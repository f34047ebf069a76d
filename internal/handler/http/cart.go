package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atletia/storefront/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CartService is interface for cart-related requests
type CartService interface {
	// AddItem resolves the product and adds a snapshot line to the cart
	AddItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int32) (*models.CartItem, error)
	// UpdateQuantity sets a cart line quantity
	UpdateQuantity(ctx context.Context, userID uuid.UUID, productID string, quantity int32) error
	// RemoveItem removes a cart line
	RemoveItem(ctx context.Context, userID uuid.UUID, productID string) error
	// Clear drops the whole cart
	Clear(ctx context.Context, userID uuid.UUID) error
	// Items returns cart lines and their total
	Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, int64, error)
}

// CartHandler represents HTTP handler for cart-related requests
type CartHandler struct {
	svc CartService
}

// NewCartHandler creates new CartHandler instance
func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total int64             `json:"total"`
}

// GetCart returns the current cart
// 200 — cart lines and total
// 401 — user is not authenticated
// 500 — internal error
func (ch *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, total, err := ch.svc.Items(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(cartResponse{Items: items, Total: total}); err != nil {
			return
		}
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// AddCartItem adds a product to the cart
// 200 — added, body carries the resulting cart line
// 400 — bad payload
// 401 — user is not authenticated
// 404 — product does not exist
// 500 — internal error
func (ch *CartHandler) AddCartItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		item, err := ch.svc.AddItem(r.Context(), payload.UserID, productID, req.Quantity)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "product not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(item); err != nil {
			return
		}
	}
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

// UpdateCartItem sets the quantity of a cart line
// 200 — updated
// 400 — bad payload
// 401 — user is not authenticated
// 404 — line does not exist
// 500 — internal error
func (ch *CartHandler) UpdateCartItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		productID := chi.URLParam(r, "productID")

		var req updateCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if err := ch.svc.UpdateQuantity(r.Context(), payload.UserID, productID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// RemoveCartItem removes a cart line
// 200 — removed (or was not present)
// 401 — user is not authenticated
// 500 — internal error
func (ch *CartHandler) RemoveCartItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		productID := chi.URLParam(r, "productID")

		if err := ch.svc.RemoveItem(r.Context(), payload.UserID, productID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// ClearCart drops the whole cart
// 200 — cleared (clearing an empty cart is a no-op)
// 401 — user is not authenticated
// 500 — internal error
func (ch *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := ch.svc.Clear(r.Context(), payload.UserID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
