package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
)

type CustomerStore struct {
	db *database.DB
}

func NewCustomerStore(db *database.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// Create inserts a new customer. The password field must already be hashed.
func (s *CustomerStore) Create(ctx context.Context, c *models.Customer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (uuid, user_name, email, password, full_name, phone)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.UUID, c.UserName, c.Email, c.Password, c.FullName, c.Phone)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	return nil
}

func (s *CustomerStore) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.get(ctx, "email = ?", email)
}

func (s *CustomerStore) GetByUUID(ctx context.Context, uuid string) (*models.Customer, error) {
	return s.get(ctx, "uuid = ?", uuid)
}

func (s *CustomerStore) get(ctx context.Context, where string, arg any) (*models.Customer, error) {
	var c models.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT uuid, user_name, email, password, full_name, phone, created_at
		FROM customers WHERE `+where,
		arg,
	).Scan(&c.UUID, &c.UserName, &c.Email, &c.Password, &c.FullName, &c.Phone, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// UpdateProfile mutates the caller's own profile fields. Email and password
// are not editable here.
func (s *CustomerStore) UpdateProfile(ctx context.Context, uuid, userName, fullName, phone string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE customers SET user_name = ?, full_name = ?, phone = ? WHERE uuid = ?
	`, userName, fullName, phone, uuid)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
