package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atletia/storefront/internal/models"
	"github.com/google/uuid"
)

// CheckoutService is interface for the checkout orchestrator
type CheckoutService interface {
	// CreateTransaction starts a checkout for the user's cart
	CreateTransaction(ctx context.Context, userID uuid.UUID, shipping models.ShippingAddress) (*models.CheckoutRedirect, error)
	// ConfirmTransaction finishes a checkout after the gateway redirect
	ConfirmTransaction(ctx context.Context, userID uuid.UUID, token string) (*models.PaymentResult, error)
}

// CheckoutHandler represents HTTP handler for checkout-related requests
type CheckoutHandler struct {
	svc CheckoutService
}

// NewCheckoutHandler creates new CheckoutHandler instance
func NewCheckoutHandler(svc CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type checkoutResponse struct {
	OrderID   string `json:"order_id"`
	URL       string `json:"url"`
	Token     string `json:"token"`
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
}

// Checkout starts a payment for the current cart
// 200 — checkout started, body carries the gateway redirect form data
// 400 — bad shipping payload or empty cart
// 401 — user is not authenticated
// 500 — internal error
func (ch *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var shipping models.ShippingAddress
		if err := json.NewDecoder(r.Body).Decode(&shipping); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		redirect, err := ch.svc.CreateTransaction(r.Context(), payload.UserID, shipping)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrCartEmpty):
				http.Error(w, "cart is empty", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := checkoutResponse{
			OrderID:   redirect.OrderID.String(),
			URL:       redirect.URL,
			Token:     redirect.Token,
			BuyOrder:  redirect.BuyOrder,
			SessionID: redirect.SessionID,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type confirmCheckoutRequest struct {
	Token string `json:"token"`
}

// ConfirmCheckout finishes a payment after the gateway redirected back
// 200 — commit result; success field tells approval from rejection
// 400 — missing token
// 401 — user is not authenticated
// 502 — gateway call failed
func (ch *CheckoutHandler) ConfirmCheckout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req confirmCheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		result, err := ch.svc.ConfirmTransaction(r.Context(), payload.UserID, req.Token)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrMissingToken):
				http.Error(w, "token is required", http.StatusBadRequest)
			default:
				http.Error(w, "payment confirmation failed", http.StatusBadGateway)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(result); err != nil {
			return
		}
	}
}
