package webpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	c := NewClient("597055555532", "test-api-key", "integration")
	c.baseURL = serverURL
	return c
}

func TestClient_Create(t *testing.T) {
	t.Run("sends_credentials_and_decodes_response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, transactionsPath, r.URL.Path)
			assert.Equal(t, "597055555532", r.Header.Get("Tbk-Api-Key-Id"))
			assert.Equal(t, "test-api-key", r.Header.Get("Tbk-Api-Key-Secret"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req CreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ord-1", req.BuyOrder)
			assert.Equal(t, int64(19990), req.Amount)
			assert.Equal(t, "http://localhost:5173/payment-success", req.ReturnURL)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(CreateResponse{
				Token: "tok123",
				URL:   "https://webpay3gint.transbank.cl/webpayserver/initTransaction",
			})
		}))
		defer srv.Close()

		c := testClient(srv.URL)

		resp, err := c.Create(context.Background(), CreateRequest{
			BuyOrder:  "ord-1",
			SessionID: "1693526400000",
			Amount:    19990,
			ReturnURL: "http://localhost:5173/payment-success",
		})
		require.NoError(t, err)
		assert.Equal(t, "tok123", resp.Token)
		assert.Equal(t, "https://webpay3gint.transbank.cl/webpayserver/initTransaction", resp.URL)
	})

	t.Run("non_200_becomes_api_error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error_message":"buy_order exceeds max length"}`))
		}))
		defer srv.Close()

		c := testClient(srv.URL)

		_, err := c.Create(context.Background(), CreateRequest{BuyOrder: "ord-1"})
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, "buy_order exceeds max length", apiErr.Message)
	})
}

func TestClient_Commit(t *testing.T) {
	t.Run("puts_token_in_path_and_decodes_response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, transactionsPath+"/tok123", r.URL.Path)
			assert.Equal(t, "597055555532", r.Header.Get("Tbk-Api-Key-Id"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"vci": "TSY",
				"amount": 19990,
				"status": "AUTHORIZED",
				"buy_order": "ord-1",
				"session_id": "1693526400000",
				"card_detail": {"card_number": "6623"},
				"authorization_code": "1213",
				"payment_type_code": "VN",
				"response_code": 0,
				"installments_number": 0
			}`))
		}))
		defer srv.Close()

		c := testClient(srv.URL)

		resp, err := c.Commit(context.Background(), "tok123")
		require.NoError(t, err)
		assert.Equal(t, "AUTHORIZED", resp.Status)
		assert.Equal(t, "ord-1", resp.BuyOrder)
		assert.Equal(t, 0, resp.ResponseCode)
		assert.Equal(t, "6623", resp.CardDetail.CardNumber)
	})

	t.Run("non_json_error_body_passes_through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Not Authorized"))
		}))
		defer srv.Close()

		c := testClient(srv.URL)

		_, err := c.Commit(context.Background(), "tok123")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Equal(t, "Not Authorized", apiErr.Message)
	})
}
