package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/atletia/storefront/internal/handler/http/mocks"
	"github.com/atletia/storefront/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckoutHandler_Checkout(t *testing.T) {
	userID := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")
	orderID := uuid.MustParse("d2719f3a-88a1-4f4b-9d5c-67f2a4b1c3e5")

	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockCheckoutService
		wantStatusCode int
		wantBody       *checkoutResponse
	}{
		{
			// 200 — checkout started, body carries the gateway redirect form data
			name:  "valid_request_return_200",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"name":"Ada","email":"ada@example.com","address":"Av. Providencia 1234","city":"Santiago","postal_code":"7500000"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), userID, gomock.Any()).Return(&models.CheckoutRedirect{
					OrderID:   orderID,
					URL:       "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
					Token:     "tok123",
					BuyOrder:  "d2719f3a-88a1-4f4b-9d5c-6",
					SessionID: "1693526400000",
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: &checkoutResponse{
				OrderID:   orderID.String(),
				URL:       "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
				Token:     "tok123",
				BuyOrder:  "d2719f3a-88a1-4f4b-9d5c-6",
				SessionID: "1693526400000",
			},
		},
		{
			// 400 — nothing in the cart to pay for
			name:  "empty_cart_return_400",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"name":"Ada","email":"ada@example.com"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrCartEmpty).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 401 — user is not authenticated
			name: "unauthorized_request_return_401",
			body: `{"name":"Ada"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 500 — order creation or gateway registration failed
			name:  "internal_error_return_500",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"name":"Ada","email":"ada@example.com"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := req.Context()
			if tt.token != nil {
				ctx = context.WithValue(ctx, authPayloadKey, tt.token)
			}

			handler := NewCheckoutHandler(st)
			h := handler.Checkout()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			resBody, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			if tt.wantBody != nil {
				var got checkoutResponse
				err = json.Unmarshal(resBody, &got)
				require.NoError(t, err)

				if diff := cmp.Diff(*tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestCheckoutHandler_ConfirmCheckout(t *testing.T) {
	userID := uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

	approved := &models.PaymentResult{
		Amount:       19990,
		Status:       "AUTHORIZED",
		BuyOrder:     "d2719f3a-88a1-4f4b-9d5c-6",
		ResponseCode: 0,
		Success:      true,
		Message:      "Transaction approved",
	}

	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockCheckoutService
		wantStatusCode int
		wantBody       *models.PaymentResult
	}{
		{
			// 200 — payment approved
			name:  "approved_return_200",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"token":"tok123"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), userID, "tok123").Return(approved, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       approved,
		},
		{
			// 400 — token is absent from the payload
			name:  "missing_token_return_400",
			token: &models.TokenPayload{UserID: userID},
			body:  `{}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrMissingToken).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 401 — user is not authenticated
			name: "unauthorized_request_return_401",
			body: `{"token":"tok123"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 502 — gateway commit call failed
			name:  "gateway_error_return_502",
			token: &models.TokenPayload{UserID: userID},
			body:  `{"token":"tok123"}`,
			setup: func(t *testing.T) *mocks.MockCheckoutService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockCheckoutService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/checkout/confirm", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := req.Context()
			if tt.token != nil {
				ctx = context.WithValue(ctx, authPayloadKey, tt.token)
			}

			handler := NewCheckoutHandler(st)
			h := handler.ConfirmCheckout()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			resBody, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			if tt.wantBody != nil {
				var got models.PaymentResult
				err = json.Unmarshal(resBody, &got)
				require.NoError(t, err)

				if diff := cmp.Diff(*tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
