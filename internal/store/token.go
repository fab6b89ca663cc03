package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/matthieukhl/storefront/internal/database"
)

type TokenStore struct {
	db *database.DB
}

func NewTokenStore(db *database.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Record persists an issued token. One row per issuance; expiry is only
// checked lazily at verification time.
func (s *TokenStore) Record(ctx context.Context, token, customerUUID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tokens (token, customer_uuid, expires_at) VALUES (?, ?, ?)
	`, token, customerUUID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to record token: %w", err)
	}

	return nil
}

// IsBlacklisted reports whether the token was invalidated by logout.
func (s *TokenStore) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM token_blacklist WHERE token = ?", token,
	).Scan(&one)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check blacklist: %w", err)
}

// Blacklist permanently rejects a token. Blacklisting the same token twice
// is reported as ErrDuplicateToken so logout can answer 401.
func (s *TokenStore) Blacklist(ctx context.Context, token, customerUUID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO token_blacklist (token, customer_uuid) VALUES (?, ?)
	`, token, customerUUID)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateToken
		}
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}
