package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// ErrOrderNumbersExhausted is returned when no free 5-digit order number
// could be found within the retry budget.
var ErrOrderNumbersExhausted = errors.New("could not allocate a free order number")

// orderNumberAttempts bounds the collision-retry loop over the 90k-value
// keyspace. Exhaustion is an explicit error, never an endless loop.
const orderNumberAttempts = 25

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type orderExecutor interface {
	queryRower
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// NextOrderNumber picks a random unused 5-digit order number. Callable with
// either a *sql.DB or an open *sql.Tx so checkout can allocate inside its
// transaction.
func NextOrderNumber(ctx context.Context, q queryRower) (int, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := models.OrderNumberMin + rand.Intn(models.OrderNumberMax-models.OrderNumberMin+1)

		var one int
		err := q.QueryRowContext(ctx,
			"SELECT 1 FROM orders WHERE order_number = ?", candidate,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to check order number: %w", err)
		}
	}

	return 0, ErrOrderNumbersExhausted
}

// InsertOrder writes the order header, filling in OrderNumber and ID. The
// availability check in NextOrderNumber holds no lock, so a concurrent
// transaction can claim the same number between check and insert; the
// resulting 1062 on uk_order_number triggers a fresh allocation instead of
// surfacing as a failure.
func InsertOrder(ctx context.Context, q orderExecutor, o *models.Order) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := NextOrderNumber(ctx, q)
		if err != nil {
			return err
		}

		res, err := q.ExecContext(ctx, `
			INSERT INTO orders (uuid, order_number, customer_uuid, total, status)
			VALUES (?, ?, ?, ?, ?)
		`, o.UUID, number, o.CustomerUUID, o.Total, o.Status)
		if isDuplicate(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		o.OrderNumber = number
		o.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read order id: %w", err)
		}
		return nil
	}

	return ErrOrderNumbersExhausted
}

type OrderStore struct {
	db *database.DB
}

func NewOrderStore(db *database.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts a bare order header outside the checkout flow.
func (s *OrderStore) Create(ctx context.Context, customerUUID string, total decimal.Decimal, status string) (*models.Order, error) {
	order := &models.Order{
		UUID:         uuid.NewString(),
		CustomerUUID: customerUUID,
		Total:        total,
		Status:       status,
	}
	if err := InsertOrder(ctx, s.db, order); err != nil {
		return nil, err
	}

	return order, nil
}

// Get returns an order header with its line items.
func (s *OrderStore) Get(ctx context.Context, id int64) (*models.Order, []models.OrderItem, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, uuid, order_number, customer_uuid, total, status, created_at
		FROM orders WHERE id = ?
	`, id).Scan(&o.ID, &o.UUID, &o.OrderNumber, &o.CustomerUUID, &o.Total, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = ? ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return &o, items, rows.Err()
}
