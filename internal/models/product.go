package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	OwnerUUID   string          `json:"owner_uuid" db:"owner_uuid"`
	Image       []byte          `json:"-" db:"image"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ProductResponse is the wire shape: image carried as base64 or null.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Owner       OwnerRef        `json:"owner"`
	Image       *string         `json:"image"`
	CategoryIDs []int64         `json:"category_ids"`
}

type OwnerRef struct {
	UUID string `json:"uuid"`
}
