package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
)

// LogStore handles shipments and the two append-only status-history tables.
// Parent ids are accepted as-is; referential integrity is deliberately not
// enforced here.
type LogStore struct {
	db *database.DB
}

func NewLogStore(db *database.DB) *LogStore {
	return &LogStore{db: db}
}

func (s *LogStore) CreateShipment(ctx context.Context, orderID int64, status string) (int64, error) {
	return s.insert(ctx,
		"INSERT INTO shipments (order_id, shipment_status) VALUES (?, ?)",
		orderID, status)
}

func (s *LogStore) GetShipment(ctx context.Context, id int64) (*models.Shipment, error) {
	var sh models.Shipment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, shipment_status, created_at FROM shipments WHERE id = ?
	`, id).Scan(&sh.ID, &sh.OrderID, &sh.ShipmentStatus, &sh.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shipment: %w", err)
	}

	return &sh, nil
}

func (s *LogStore) CreateOrderLog(ctx context.Context, orderID int64, status string) (int64, error) {
	return s.insert(ctx,
		"INSERT INTO order_logs (order_id, order_status) VALUES (?, ?)",
		orderID, status)
}

func (s *LogStore) GetOrderLog(ctx context.Context, id int64) (*models.OrderLog, error) {
	var l models.OrderLog
	err := s.db.QueryRowContext(ctx, `
		SELECT id, order_id, order_status, created_at FROM order_logs WHERE id = ?
	`, id).Scan(&l.ID, &l.OrderID, &l.OrderStatus, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query order log: %w", err)
	}

	return &l, nil
}

func (s *LogStore) CreateShipmentLog(ctx context.Context, shipmentID int64, status string) (int64, error) {
	return s.insert(ctx,
		"INSERT INTO shipment_logs (shipment_id, shipment_status) VALUES (?, ?)",
		shipmentID, status)
}

func (s *LogStore) GetShipmentLog(ctx context.Context, id int64) (*models.ShipmentLog, error) {
	var l models.ShipmentLog
	err := s.db.QueryRowContext(ctx, `
		SELECT id, shipment_id, shipment_status, created_at FROM shipment_logs WHERE id = ?
	`, id).Scan(&l.ID, &l.ShipmentID, &l.ShipmentStatus, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shipment log: %w", err)
	}

	return &l, nil
}

func (s *LogStore) insert(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert log row: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read log id: %w", err)
	}

	return id, nil
}
