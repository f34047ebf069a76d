package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/atletia/storefront/internal/models"
	"github.com/atletia/storefront/internal/webpay"
)

// gateway constraint on merchant order references
const maxBuyOrderLen = 26

// GatewayClient is interface for the payment gateway
type GatewayClient interface {
	// Create registers a new transaction and returns the redirect token and URL
	Create(ctx context.Context, createReq webpay.CreateRequest) (*webpay.CreateResponse, error)
	// Commit finalizes a previously created transaction
	Commit(ctx context.Context, token string) (*webpay.CommitResponse, error)
}

// PaymentService translates store requests into gateway calls. It is
// stateless: every call is a synchronous single-attempt pass-through with
// input shaping on the way in and success/message derivation on the way out.
type PaymentService struct {
	gateway   GatewayClient
	returnURL string
}

// NewPaymentService creates new PaymentService instance
func NewPaymentService(gateway GatewayClient, returnURL string) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		returnURL: returnURL,
	}
}

// BuyOrderFromID derives the merchant order reference sent to the gateway:
// the order id truncated to 26 characters, or a timestamp when no id is
// supplied. The truncation keeps the reference resolvable back to the order
// by prefix.
func BuyOrderFromID(orderID string) string {
	if orderID == "" {
		orderID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if len(orderID) > maxBuyOrderLen {
		return orderID[:maxBuyOrderLen]
	}
	return orderID
}

// CreateTransaction registers a gateway transaction for the given amount.
// The amount is rounded to an integer as the gateway requires.
func (ps *PaymentService) CreateTransaction(ctx context.Context, amount float64, orderID string) (*models.TransactionInit, error) {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return nil, models.ErrMissingAmount
	}

	buyOrder := BuyOrderFromID(orderID)
	sessionID := strconv.FormatInt(time.Now().UnixMilli(), 10)

	resp, err := ps.gateway.Create(ctx, webpay.CreateRequest{
		BuyOrder:  buyOrder,
		SessionID: sessionID,
		Amount:    rounded,
		ReturnURL: ps.returnURL,
	})
	if err != nil {
		return nil, err
	}

	if resp.URL == "" || resp.Token == "" {
		return nil, errors.New("no redirection URL or token received from gateway")
	}

	return &models.TransactionInit{
		URL:       resp.URL,
		Token:     resp.Token,
		BuyOrder:  buyOrder,
		SessionID: sessionID,
	}, nil
}

// ConfirmTransaction commits a gateway transaction and derives the
// success/message pair from the response code. A missing token is rejected
// before any network call. Re-issuing the commit for the same token is safe;
// the gateway reports the same outcome.
func (ps *PaymentService) ConfirmTransaction(ctx context.Context, token string) (*models.PaymentResult, error) {
	if token == "" {
		return nil, models.ErrMissingToken
	}

	commit, err := ps.gateway.Commit(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &models.PaymentResult{
		VCI:                commit.VCI,
		Amount:             commit.Amount,
		Status:             commit.Status,
		BuyOrder:           commit.BuyOrder,
		SessionID:          commit.SessionID,
		AccountingDate:     commit.AccountingDate,
		TransactionDate:    commit.TransactionDate,
		AuthorizationCode:  commit.AuthorizationCode,
		PaymentTypeCode:    commit.PaymentTypeCode,
		ResponseCode:       commit.ResponseCode,
		InstallmentsNumber: commit.InstallmentsNumber,
	}
	if commit.CardDetail.CardNumber != "" {
		result.CardDetail = &models.CardDetail{CardNumber: commit.CardDetail.CardNumber}
	}

	if commit.ResponseCode == models.ResponseCodeApproved {
		result.Success = true
		result.Message = "Transaction approved"
	} else {
		result.Message = "Transaction rejected"
	}

	return result, nil
}
