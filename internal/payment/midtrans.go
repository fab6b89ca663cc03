package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// MidtransProvider talks to the Midtrans Snap API. Snap wants a server-key
// basic-auth header (key as username, empty password) and answers with a
// hosted redirect URL.
type MidtransProvider struct {
	serverKey string
	baseURL   string
	client    *http.Client
}

type snapTransactionDetails struct {
	OrderID     string          `json:"order_id"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
}

type snapCustomerDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type snapCreditCard struct {
	Secure bool `json:"secure"`
}

type snapRequest struct {
	TransactionDetails snapTransactionDetails `json:"transaction_details"`
	CreditCard         snapCreditCard         `json:"credit_card"`
	CustomerDetails    snapCustomerDetails    `json:"customer_details"`
}

type snapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages"`
}

func NewMidtransProvider(serverKey, baseURL string) (*MidtransProvider, error) {
	if serverKey == "" {
		return nil, fmt.Errorf("midtrans server key must be set")
	}

	return &MidtransProvider{
		serverKey: serverKey,
		baseURL:   baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (p *MidtransProvider) CreateTransaction(ctx context.Context, orderID string, amount decimal.Decimal, buyer Buyer) (string, error) {
	req := snapRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     orderID,
			GrossAmount: amount,
		},
		CreditCard: snapCreditCard{Secure: true},
		CustomerDetails: snapCustomerDetails{
			FirstName: buyer.FirstName,
			LastName:  buyer.LastName,
			Email:     buyer.Email,
			Phone:     buyer.Phone,
		},
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		p.baseURL+"/snap/v1/transactions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.SetBasicAuth(p.serverKey, "")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("midtrans API error %d: %s", resp.StatusCode, string(body))
	}

	var response snapResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if response.RedirectURL == "" {
		return "", fmt.Errorf("midtrans response missing redirect_url: %v", response.ErrorMessages)
	}

	return response.RedirectURL, nil
}

func (p *MidtransProvider) Name() string {
	return "midtrans"
}

// Compile-time interface check
var _ Provider = (*MidtransProvider)(nil)
