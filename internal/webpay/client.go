// Package webpay is a thin client for the Webpay Plus REST API. It covers the
// two operations the store needs: creating a transaction and committing it
// after the cardholder returns. The gateway, not this client, is the source of
// truth for money movement; calls are single-attempt with no retries.
package webpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	integrationBaseURL = "https://webpay3gint.transbank.cl"
	productionBaseURL  = "https://webpay3g.transbank.cl"

	transactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"

	// EnvironmentProduction selects the live gateway host; anything else
	// targets integration.
	EnvironmentProduction = "production"
)

// Client represents HTTP client for gateway requests
type Client struct {
	client       *http.Client
	baseURL      string
	commerceCode string
	apiKey       string
}

// NewClient creates new Client instance for the given environment.
func NewClient(commerceCode, apiKey, environment string) *Client {
	baseURL := integrationBaseURL
	if environment == EnvironmentProduction {
		baseURL = productionBaseURL
	}

	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:      baseURL,
		commerceCode: commerceCode,
		apiKey:       apiKey,
	}
}

// CreateRequest is the create-transaction payload. BuyOrder must not exceed
// 26 characters.
type CreateRequest struct {
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
	ReturnURL string `json:"return_url"`
}

// CreateResponse carries the token and the URL the browser must POST it to.
type CreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// CommitResponse is the gateway commit result. ResponseCode 0 means approved.
type CommitResponse struct {
	VCI        string `json:"vci"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	BuyOrder   string `json:"buy_order"`
	SessionID  string `json:"session_id"`
	CardDetail struct {
		CardNumber string `json:"card_number"`
	} `json:"card_detail"`
	AccountingDate     string `json:"accounting_date"`
	TransactionDate    string `json:"transaction_date"`
	AuthorizationCode  string `json:"authorization_code"`
	PaymentTypeCode    string `json:"payment_type_code"`
	ResponseCode       int    `json:"response_code"`
	InstallmentsNumber int    `json:"installments_number"`
}

// APIError is a non-2xx gateway reply
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webpay: status %d: %s", e.StatusCode, e.Message)
}

// Create registers a new transaction and returns the redirect token and URL.
func (c *Client) Create(ctx context.Context, createReq CreateRequest) (*CreateResponse, error) {
	body, err := json.Marshal(createReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transactionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	createResp := CreateResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&createResp); err != nil {
		return nil, err
	}

	return &createResp, nil
}

// Commit finalizes a previously created transaction. Safe to re-issue for the
// same token: the gateway reports the same outcome for an already committed
// transaction.
func (c *Client) Commit(ctx context.Context, token string) (*CommitResponse, error) {
	url := c.baseURL + transactionsPath + "/" + token

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp)
	}

	commitResp := CommitResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&commitResp); err != nil {
		return nil, err
	}

	return &commitResp, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Tbk-Api-Key-Id", c.commerceCode)
	req.Header.Set("Tbk-Api-Key-Secret", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	// gateway errors come as {"error_message": "..."}
	var payload struct {
		ErrorMessage string `json:"error_message"`
	}
	msg := string(raw)
	if err := json.Unmarshal(raw, &payload); err == nil && payload.ErrorMessage != "" {
		msg = payload.ErrorMessage
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
