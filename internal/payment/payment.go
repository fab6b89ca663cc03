package payment

import (
	"context"
	"fmt"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/shopspring/decimal"
)

// Buyer carries the customer contact details the gateway wants.
type Buyer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Provider turns a committed order into a hosted payment page.
type Provider interface {
	// CreateTransaction registers the order with the gateway and returns
	// a redirect URL where the buyer completes payment.
	CreateTransaction(ctx context.Context, orderID string, amount decimal.Decimal, buyer Buyer) (string, error)
	Name() string
}

// New creates a payment provider based on configuration
func New(cfg *config.PaymentConfig) (Provider, error) {
	switch cfg.Provider {
	case "midtrans":
		return NewMidtransProvider(cfg.ServerKey, cfg.BaseURL)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", cfg.Provider)
	}
}
