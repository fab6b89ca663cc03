package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MockProvider returns deterministic redirect URLs for local development
// and tests. Set Fail to exercise the payment-failure path.
type MockProvider struct {
	Fail bool
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) CreateTransaction(ctx context.Context, orderID string, amount decimal.Decimal, buyer Buyer) (string, error) {
	if p.Fail {
		return "", errors.New("mock payment gateway failure")
	}

	return fmt.Sprintf("https://payments.example.com/pay/%s?amount=%s", orderID, amount.StringFixed(2)), nil
}

func (p *MockProvider) Name() string {
	return "mock"
}

// Compile-time interface check
var _ Provider = (*MockProvider)(nil)
