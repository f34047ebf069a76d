package models

import "github.com/google/uuid"

// gateway approval code: response_code 0 is approved, anything else rejected
const ResponseCodeApproved = 0

// TransactionInit is the result of creating a gateway transaction.
type TransactionInit struct {
	URL       string
	Token     string
	BuyOrder  string
	SessionID string
}

// CardDetail is the masked card info returned on commit.
type CardDetail struct {
	CardNumber string `json:"card_number"`
}

// PaymentResult is the outcome of committing a gateway transaction. Success
// and Message are derived from ResponseCode; the rest echoes the gateway.
type PaymentResult struct {
	VCI                string      `json:"vci,omitempty"`
	Amount             int64       `json:"amount"`
	Status             string      `json:"status,omitempty"`
	BuyOrder           string      `json:"buy_order"`
	SessionID          string      `json:"session_id"`
	CardDetail         *CardDetail `json:"card_detail,omitempty"`
	AccountingDate     string      `json:"accounting_date,omitempty"`
	TransactionDate    string      `json:"transaction_date,omitempty"`
	AuthorizationCode  string      `json:"authorization_code,omitempty"`
	PaymentTypeCode    string      `json:"payment_type_code,omitempty"`
	ResponseCode       int         `json:"response_code"`
	InstallmentsNumber int         `json:"installments_number,omitempty"`
	Success            bool        `json:"success"`
	Message            string      `json:"message"`
}

// CheckoutRedirect carries everything the client needs to hand the browser
// off to the gateway: a form POST to URL with hidden field TBK_TOKEN=Token.
type CheckoutRedirect struct {
	OrderID   uuid.UUID
	URL       string
	Token     string
	BuyOrder  string
	SessionID string
}
