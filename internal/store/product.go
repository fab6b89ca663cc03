package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
)

type ProductStore struct {
	db *database.DB
}

func NewProductStore(db *database.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO products (name, description, price, quantity, owner_uuid, image)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Price, p.Quantity, p.OwnerUUID, p.Image)
	if err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read product id: %w", err)
	}

	return id, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, quantity, owner_uuid, image, created_at
		FROM products WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.OwnerUUID, &p.Image, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Update rewrites the product row and replaces its category set in one
// transaction. The owner check happens in the handler before any mutation.
func (s *ProductStore) Update(ctx context.Context, p *models.Product, categoryIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, price = ?, quantity = ?, image = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.Quantity, p.Image, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM product_categories WHERE product_id = ?", p.ID,
	); err != nil {
		return fmt.Errorf("failed to clear product categories: %w", err)
	}

	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)",
			p.ID, categoryID,
		); err != nil {
			return fmt.Errorf("failed to insert product category: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit product update: %w", err)
	}

	return nil
}

// ListAll returns every product with its category ids.
func (s *ProductStore) ListAll(ctx context.Context) ([]models.Product, map[int64][]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, price, quantity, owner_uuid, image, created_at
		FROM products ORDER BY id
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity,
			&p.OwnerUUID, &p.Image, &p.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	categories, err := s.categoryMap(ctx)
	if err != nil {
		return nil, nil, err
	}

	return products, categories, nil
}

func (s *ProductStore) categoryMap(ctx context.Context) (map[int64][]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT product_id, category_id FROM product_categories",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[int64][]int64)
	for rows.Next() {
		var productID, categoryID int64
		if err := rows.Scan(&productID, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan product category: %w", err)
		}
		categories[productID] = append(categories[productID], categoryID)
	}

	return categories, rows.Err()
}

// CategoryIDs returns the category set of a single product.
func (s *ProductStore) CategoryIDs(ctx context.Context, productID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category_id FROM product_categories WHERE product_id = ?", productID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query product categories: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
