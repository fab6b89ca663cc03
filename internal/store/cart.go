package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
)

type CartStore struct {
	db *database.DB
}

func NewCartStore(db *database.DB) *CartStore {
	return &CartStore{db: db}
}

// AddItem puts a product into the caller's cart. The cart row is created
// lazily on first use; re-adding the same product increments its quantity
// instead of creating a second line.
func (s *CartStore) AddItem(ctx context.Context, customerUUID string, productID int64, quantity int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Product must exist before it can be staged.
	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id = ?", productID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check product: %w", err)
	}

	// LAST_INSERT_ID(id) makes the upsert return the existing cart id on
	// the duplicate path.
	res, err := tx.ExecContext(ctx, `
		INSERT INTO carts (customer_uuid) VALUES (?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
	`, customerUUID)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert cart: %w", err)
	}
	cartID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read cart id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
	`, cartID, productID, quantity); err != nil {
		return 0, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit cart update: %w", err)
	}

	return cartID, nil
}

// GetByCustomer returns the customer's active cart, or ErrNotFound if they
// never added anything.
func (s *CartStore) GetByCustomer(ctx context.Context, customerUUID string) (*models.Cart, error) {
	var c models.Cart
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_uuid, created_at FROM carts WHERE customer_uuid = ?
	`, customerUUID).Scan(&c.ID, &c.CustomerUUID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &c, nil
}

// GetByID looks a cart up by id, for checkout ownership verification.
func (s *CartStore) GetByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	var c models.Cart
	err := s.db.QueryRowContext(ctx, `
		SELECT id, customer_uuid, created_at FROM carts WHERE id = ?
	`, cartID).Scan(&c.ID, &c.CustomerUUID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &c, nil
}

// Items returns the cart contents joined with live product name and price.
func (s *CartStore) Items(ctx context.Context, cartID int64) ([]models.CartItemView, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ci.product_id, p.name, ci.quantity, p.price
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = ?
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []models.CartItemView
	for rows.Next() {
		var item models.CartItemView
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
