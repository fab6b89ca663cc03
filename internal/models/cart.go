package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID           int64     `json:"id" db:"id"`
	CustomerUUID string    `json:"customer_uuid" db:"customer_uuid"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CartItem struct {
	ID        int64 `json:"id" db:"id"`
	CartID    int64 `json:"cart_id" db:"cart_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// CartItemView is a cart line joined with live product name and price.
type CartItemView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
