package models

import "time"

// Shipments and the two log tables are append-and-read-only history
// records. Parent ids are not verified against orders/shipments.

type Shipment struct {
	ID             int64     `json:"id" db:"id"`
	OrderID        int64     `json:"order_id" db:"order_id"`
	ShipmentStatus string    `json:"shipment_status" db:"shipment_status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type OrderLog struct {
	ID          int64     `json:"id" db:"id"`
	OrderID     int64     `json:"order_id" db:"order_id"`
	OrderStatus string    `json:"order_status" db:"order_status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type ShipmentLog struct {
	ID             int64     `json:"id" db:"id"`
	ShipmentID     int64     `json:"shipment_id" db:"shipment_id"`
	ShipmentStatus string    `json:"shipment_status" db:"shipment_status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type ShipmentRequest struct {
	OrderID        int64  `json:"order_id" binding:"required"`
	ShipmentStatus string `json:"shipment_status" binding:"required"`
}

type OrderLogRequest struct {
	OrderID     int64  `json:"order_id" binding:"required"`
	OrderStatus string `json:"order_status" binding:"required"`
}

type ShipmentLogRequest struct {
	ShipmentID     int64  `json:"shipment_id" binding:"required"`
	ShipmentStatus string `json:"shipment_status" binding:"required"`
}
