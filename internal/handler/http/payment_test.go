package handler

import (
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPaymentHandler_CreateTransaction(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockPaymentService
		wantStatusCode int
		wantBody       *createTransactionResponse
		wantErrBody    *relayError
	}{
		{
			// 200 — transaction registered, body carries the redirect form data
			name: "valid_request_return_200",
			body: `{"amount":19990,"orderId":"ord-1"}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), float64(19990), "ord-1").Return(&models.TransactionInit{
					URL:       "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
					Token:     "tok123",
					BuyOrder:  "ord-1",
					SessionID: "1693526400000",
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: &createTransactionResponse{
				URL:       "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
				Token:     "tok123",
				BuyOrder:  "ord-1",
				SessionID: "1693526400000",
			},
		},
		{
			// 500 — amount is absent from the payload
			name: "missing_amount_return_500",
			body: `{"orderId":"ord-1"}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantErrBody: &relayError{
				Error:   "Error creating transaction",
				Details: "amount is required",
			},
		},
		{
			// 500 — gateway refused the create call
			name: "gateway_error_return_500",
			body: `{"amount":19990,"orderId":"ord-1"}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantErrBody: &relayError{
				Error:   "Error creating transaction",
				Details: "internal error",
			},
		},
		{
			// 500 — malformed request body
			name: "bad_body_return_500",
			body: "not json",
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantErrBody: &relayError{
				Error:   "Error creating transaction",
				Details: "invalid request body",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/create-transaction", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)

			handler := NewPaymentHandler(st)
			h := handler.CreateTransaction()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			resBody, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			if tt.wantBody != nil {
				var got createTransactionResponse
				err = json.Unmarshal(resBody, &got)
				require.NoError(t, err)

				if diff := cmp.Diff(*tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}

			if tt.wantErrBody != nil {
				var got relayError
				err = json.Unmarshal(resBody, &got)
				require.NoError(t, err)

				if diff := cmp.Diff(*tt.wantErrBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestPaymentHandler_ConfirmTransaction(t *testing.T) {
	approved := &models.PaymentResult{
		VCI:               "TSY",
		Amount:            19990,
		Status:            "AUTHORIZED",
		BuyOrder:          "ord-1",
		SessionID:         "1693526400000",
		CardDetail:        &models.CardDetail{CardNumber: "6623"},
		AuthorizationCode: "1213",
		ResponseCode:      0,
		Success:           true,
		Message:           "Transaction approved",
	}
	rejected := &models.PaymentResult{
		Amount:       19990,
		Status:       "FAILED",
		BuyOrder:     "ord-1",
		SessionID:    "1693526400000",
		ResponseCode: -1,
		Success:      false,
		Message:      "Transaction rejected",
	}

	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockPaymentService
		wantStatusCode int
		wantBody       *models.PaymentResult
		wantErrBody    *relayError
	}{
		{
			// 200 — gateway approved the transaction
			name: "approved_return_200",
			body: `{"token":"tok123"}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), "tok123").Return(approved, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       approved,
		},
		{
			// 200 — rejection is still a successful relay response
			name: "rejected_return_200",
			body: `{"token":"tok123"}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), "tok123").Return(rejected, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody:       rejected,
		},
		{
			// 500 — token is absent from the payload
			name: "missing_token_return_500",
			body: `{}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantErrBody: &relayError{
				Error:   "Error confirming transaction",
				Details: "token is required",
				Success: boolPtr(false),
			},
		},
		{
			// 500 — gateway commit call failed
			name: "gateway_error_return_500",
			body: `{"token":"tok123"}`,
			setup: func(t *testing.T) *mocks.MockPaymentService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockPaymentService(ctrl)
				svcMock.EXPECT().ConfirmTransaction(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
			wantErrBody: &relayError{
				Error:   "Error confirming transaction",
				Details: "internal error",
				Success: boolPtr(false),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/confirm-transaction", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)

			handler := NewPaymentHandler(st)
			h := handler.ConfirmTransaction()
			h(w, req)

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

			if tt.wantErrBody != nil {
				var got relayError
				err = json.Unmarshal(resBody, &got)
				require.NoError(t, err)

				if diff := cmp.Diff(*tt.wantErrBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
