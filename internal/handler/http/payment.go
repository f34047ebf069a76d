package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atletia/storefront/internal/models"
)

// PaymentService is interface for the transaction relay
type PaymentService interface {
	// CreateTransaction registers a gateway transaction
	CreateTransaction(ctx context.Context, amount float64, orderID string) (*models.TransactionInit, error)
	// ConfirmTransaction commits a gateway transaction
	ConfirmTransaction(ctx context.Context, token string) (*models.PaymentResult, error)
}

// PaymentHandler represents HTTP handler for the transaction relay endpoints.
// Both endpoints are stateless pass-throughs: gateway failures are wrapped
// into a structured error payload and never crash the process.
type PaymentHandler struct {
	svc PaymentService
}

// NewPaymentHandler creates new PaymentHandler instance
func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type createTransactionRequest struct {
	Amount  *float64 `json:"amount"`
	OrderID string   `json:"orderId"`
}

type createTransactionResponse struct {
	URL       string `json:"url"`
	Token     string `json:"token"`
	BuyOrder  string `json:"buyOrder"`
	SessionID string `json:"sessionId"`
}

type relayError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Success *bool  `json:"success,omitempty"`
}

// CreateTransaction handles POST /api/create-transaction
// 200 — {url, token, buyOrder, sessionId}
// 500 — {error, details} on missing amount or gateway failure
func (ph *PaymentHandler) CreateTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createTransactionRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeRelayError(w, "Error creating transaction", "invalid request body", nil)
			return
		}
		defer r.Body.Close()

		if req.Amount == nil {
			writeRelayError(w, "Error creating transaction", models.ErrMissingAmount.Error(), nil)
			return
		}

		init, err := ph.svc.CreateTransaction(r.Context(), *req.Amount, req.OrderID)
		if err != nil {
			writeRelayError(w, "Error creating transaction", err.Error(), nil)
			return
		}

		resp := createTransactionResponse{
			URL:       init.URL,
			Token:     init.Token,
			BuyOrder:  init.BuyOrder,
			SessionID: init.SessionID,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type confirmTransactionRequest struct {
	Token string `json:"token"`
}

// ConfirmTransaction handles POST /api/confirm-transaction
// 200 — gateway commit fields plus derived success and message
// 500 — {error, details, success:false} on missing token or gateway failure
func (ph *PaymentHandler) ConfirmTransaction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		success := false

		var req confirmTransactionRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeRelayError(w, "Error confirming transaction", "invalid request body", &success)
			return
		}
		defer r.Body.Close()

		if req.Token == "" {
			writeRelayError(w, "Error confirming transaction", models.ErrMissingToken.Error(), &success)
			return
		}

		result, err := ph.svc.ConfirmTransaction(r.Context(), req.Token)
		if err != nil {
			writeRelayError(w, "Error confirming transaction", err.Error(), &success)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(result); err != nil {
			return
		}
	}
}

func writeRelayError(w http.ResponseWriter, msg, details string, success *bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(relayError{
		Error:   msg,
		Details: details,
		Success: success,
	})
}
