package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/atletia/storefront/internal/models"
	"github.com/atletia/storefront/internal/webpay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	createFn func(ctx context.Context, req webpay.CreateRequest) (*webpay.CreateResponse, error)
	commitFn func(ctx context.Context, token string) (*webpay.CommitResponse, error)

	createCalls int
	commitCalls int
}

func (fg *fakeGateway) Create(ctx context.Context, req webpay.CreateRequest) (*webpay.CreateResponse, error) {
	fg.createCalls++
	return fg.createFn(ctx, req)
}

func (fg *fakeGateway) Commit(ctx context.Context, token string) (*webpay.CommitResponse, error) {
	fg.commitCalls++
	return fg.commitFn(ctx, token)
}

func TestBuyOrderFromID(t *testing.T) {
	t.Run("short_id_passes_through", func(t *testing.T) {
		assert.Equal(t, "ord-1", BuyOrderFromID("ord-1"))
	})

	t.Run("long_id_truncated_to_26", func(t *testing.T) {
		id := "d2719f3a-88a1-4f4b-9d5c-67f2a4b1c3e5"
		got := BuyOrderFromID(id)
		assert.Len(t, got, 26)
		assert.Equal(t, id[:26], got)
	})

	t.Run("empty_id_falls_back_to_timestamp", func(t *testing.T) {
		got := BuyOrderFromID("")
		require.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), 26)
		_, err := strconv.ParseInt(got, 10, 64)
		assert.NoError(t, err)
	})
}

func TestPaymentService_CreateTransaction(t *testing.T) {
	t.Run("rounds_amount_and_maps_response", func(t *testing.T) {
		gw := &fakeGateway{
			createFn: func(_ context.Context, req webpay.CreateRequest) (*webpay.CreateResponse, error) {
				assert.Equal(t, int64(19990), req.Amount)
				assert.Equal(t, "ord-1", req.BuyOrder)
				assert.Equal(t, "http://localhost:5173/payment-success", req.ReturnURL)
				assert.NotEmpty(t, req.SessionID)
				return &webpay.CreateResponse{
					Token: "tok123",
					URL:   "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
				}, nil
			},
		}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		init, err := ps.CreateTransaction(context.Background(), 19989.6, "ord-1")
		require.NoError(t, err)
		assert.Equal(t, "tok123", init.Token)
		assert.Equal(t, "https://webpay3gint.transbank.cl/webpayserver/initTransaction", init.URL)
		assert.Equal(t, "ord-1", init.BuyOrder)
		assert.NotEmpty(t, init.SessionID)
	})

	t.Run("negative_amount_rejected_before_gateway", func(t *testing.T) {
		gw := &fakeGateway{}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		_, err := ps.CreateTransaction(context.Background(), -1, "ord-1")
		assert.ErrorIs(t, err, models.ErrMissingAmount)
		assert.Zero(t, gw.createCalls)
	})

	t.Run("missing_redirect_data_is_an_error", func(t *testing.T) {
		gw := &fakeGateway{
			createFn: func(_ context.Context, _ webpay.CreateRequest) (*webpay.CreateResponse, error) {
				return &webpay.CreateResponse{}, nil
			},
		}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		_, err := ps.CreateTransaction(context.Background(), 19990, "ord-1")
		assert.Error(t, err)
	})

	t.Run("gateway_error_propagates", func(t *testing.T) {
		gwErr := errors.New("gateway unavailable")
		gw := &fakeGateway{
			createFn: func(_ context.Context, _ webpay.CreateRequest) (*webpay.CreateResponse, error) {
				return nil, gwErr
			},
		}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		_, err := ps.CreateTransaction(context.Background(), 19990, "ord-1")
		assert.ErrorIs(t, err, gwErr)
	})
}

func TestPaymentService_ConfirmTransaction(t *testing.T) {
	t.Run("approved_commit_derives_success", func(t *testing.T) {
		gw := &fakeGateway{
			commitFn: func(_ context.Context, token string) (*webpay.CommitResponse, error) {
				assert.Equal(t, "tok123", token)
				resp := &webpay.CommitResponse{
					VCI:               "TSY",
					Amount:            19990,
					Status:            "AUTHORIZED",
					BuyOrder:          "ord-1",
					SessionID:         "1693526400000",
					AuthorizationCode: "1213",
					ResponseCode:      0,
				}
				resp.CardDetail.CardNumber = "6623"
				return resp, nil
			},
		}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		result, err := ps.ConfirmTransaction(context.Background(), "tok123")
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "Transaction approved", result.Message)
		assert.Equal(t, "ord-1", result.BuyOrder)
		require.NotNil(t, result.CardDetail)
		assert.Equal(t, "6623", result.CardDetail.CardNumber)
	})

	t.Run("nonzero_response_code_is_rejected", func(t *testing.T) {
		gw := &fakeGateway{
			commitFn: func(_ context.Context, _ string) (*webpay.CommitResponse, error) {
				return &webpay.CommitResponse{
					Amount:       19990,
					Status:       "FAILED",
					BuyOrder:     "ord-1",
					ResponseCode: -1,
				}, nil
			},
		}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		result, err := ps.ConfirmTransaction(context.Background(), "tok123")
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Transaction rejected", result.Message)
		assert.Nil(t, result.CardDetail)
	})

	t.Run("empty_token_rejected_before_gateway", func(t *testing.T) {
		gw := &fakeGateway{}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		_, err := ps.ConfirmTransaction(context.Background(), "")
		assert.ErrorIs(t, err, models.ErrMissingToken)
		assert.Zero(t, gw.commitCalls)
	})

	t.Run("gateway_error_propagates", func(t *testing.T) {
		gwErr := errors.New("gateway unavailable")
		gw := &fakeGateway{
			commitFn: func(_ context.Context, _ string) (*webpay.CommitResponse, error) {
				return nil, gwErr
			},
		}
		ps := NewPaymentService(gw, "http://localhost:5173/payment-success")

		_, err := ps.ConfirmTransaction(context.Background(), "tok123")
		assert.ErrorIs(t, err, gwErr)
	})
}
