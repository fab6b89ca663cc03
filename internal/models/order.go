package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID           int64           `json:"id" db:"id"`
	UUID         string          `json:"uuid" db:"uuid"`
	OrderNumber  int             `json:"order_number" db:"order_number"`
	CustomerUUID string          `json:"customer_uuid" db:"customer_uuid"`
	Total        decimal.Decimal `json:"total" db:"total"`
	Status       string          `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"` // unit price captured at checkout
}

const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// Order numbers are short human-facing identifiers, always five decimal
// digits, distinct from the internal auto-increment id.
const (
	OrderNumberMin = 10000
	OrderNumberMax = 99999
)

type OrderCreateRequest struct {
	Total  decimal.Decimal `json:"total"`
	Status string          `json:"status"`
}

// Receipt is the document returned after a successful checkout.
type Receipt struct {
	OrderNumber int             `json:"order_number"`
	Items       []ReceiptLine   `json:"items"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	Customer    ReceiptCustomer `json:"customer"`
	PaymentURL  string          `json:"payment_url,omitempty"`
}

type ReceiptLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type ReceiptCustomer struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}
