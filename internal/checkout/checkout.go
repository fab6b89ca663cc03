package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/matthieukhl/storefront/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrCartNotFound means the cart id does not exist.
	ErrCartNotFound = errors.New("cart not found")
	// ErrNotCartOwner means the cart exists but belongs to someone else.
	ErrNotCartOwner = errors.New("cart does not belong to the caller")
	// ErrEmptyCart means there is nothing to check out.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductUnavailable means a staged product vanished from the
	// catalog; the whole checkout fails, nothing is committed.
	ErrProductUnavailable = errors.New("product no longer available")
)

// PaymentError reports a gateway failure that happened AFTER the order was
// durably committed. The receipt inside is valid; only the payment step
// failed. Callers must surface this distinctly from a checkout failure.
type PaymentError struct {
	Receipt *models.Receipt
	Err     error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("order %d committed but payment setup failed: %v", e.Receipt.OrderNumber, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// Service converts a cart into an order inside a single transaction and
// then requests a payment redirect from the gateway.
type Service struct {
	db       *database.DB
	provider payment.Provider
	logger   *zap.Logger
}

func NewService(db *database.DB, provider payment.Provider, logger *zap.Logger) *Service {
	return &Service{db: db, provider: provider, logger: logger}
}

type pricedLine struct {
	productID int64
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// Checkout transitions the cart's contents into a durable order, or fails
// leaving all state unchanged. Prices are re-read from the live catalog
// inside the transaction, so a price change since add-to-cart is honored.
// Payment-gateway failure after commit is returned as *PaymentError.
func (s *Service) Checkout(ctx context.Context, customerUUID string, cartID int64) (*models.Receipt, error) {
	// Ownership mismatch is an authorization failure, not a not-found.
	var ownerUUID string
	err := s.db.QueryRowContext(ctx,
		"SELECT customer_uuid FROM carts WHERE id = ?", cartID,
	).Scan(&ownerUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	if ownerUUID != customerUUID {
		return nil, ErrNotCartOwner
	}

	var contact models.ReceiptCustomer
	err = s.db.QueryRowContext(ctx,
		"SELECT full_name, email, phone FROM customers WHERE uuid = ?", customerUUID,
	).Scan(&contact.FullName, &contact.Email, &contact.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	order, lines, err := s.materializeOrder(ctx, customerUUID, cartID)
	if err != nil {
		return nil, err
	}

	receipt := buildReceipt(order, lines, contact)

	s.logger.Info("checkout committed",
		zap.Int("order_number", order.OrderNumber),
		zap.String("customer_uuid", customerUUID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("items", len(lines)))

	// The order is already committed at this point: a gateway failure is a
	// known inconsistency window, reported distinctly so the caller sees
	// the order succeeded even though payment setup did not.
	redirectURL, err := s.provider.CreateTransaction(ctx,
		strconv.Itoa(order.OrderNumber), order.Total, buyerFromContact(contact))
	if err != nil {
		s.logger.Warn("payment gateway failed after checkout commit",
			zap.Int("order_number", order.OrderNumber),
			zap.Error(err))
		return receipt, &PaymentError{Receipt: receipt, Err: err}
	}

	receipt.PaymentURL = redirectURL
	return receipt, nil
}

// materializeOrder runs the all-or-nothing transition: read and lock the
// cart lines, re-price against the live catalog, allocate an order number,
// write the order and its items, and clear the cart. Any failure rolls the
// whole thing back.
func (s *Service) materializeOrder(ctx context.Context, customerUUID string, cartID int64) (*models.Order, []pricedLine, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// FOR UPDATE serializes concurrent checkouts of the same cart: the
	// second one blocks here and then sees an empty cart.
	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity FROM cart_items WHERE cart_id = ? FOR UPDATE
	`, cartID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock cart items: %w", err)
	}

	type rawLine struct {
		productID int64
		quantity  int
	}
	var raw []rawLine
	for rows.Next() {
		var l rawLine
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		raw = append(raw, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}
	rows.Close()

	if len(raw) == 0 {
		return nil, nil, ErrEmptyCart
	}

	// Re-read the current catalog price of every line. A missing product
	// fails the entire checkout, leaving the cart untouched.
	total := decimal.Zero
	lines := make([]pricedLine, 0, len(raw))
	for _, l := range raw {
		var name string
		var price decimal.Decimal
		err := tx.QueryRowContext(ctx,
			"SELECT name, price FROM products WHERE id = ? FOR UPDATE", l.productID,
		).Scan(&name, &price)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("product %d: %w", l.productID, ErrProductUnavailable)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query product %d: %w", l.productID, err)
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.quantity))))
		lines = append(lines, pricedLine{
			productID: l.productID,
			name:      name,
			quantity:  l.quantity,
			unitPrice: price,
		})
	}

	order := &models.Order{
		UUID:         uuid.NewString(),
		CustomerUUID: customerUUID,
		Total:        total,
		Status:       models.OrderStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.InsertOrder(ctx, tx, order); err != nil {
		return nil, nil, err
	}

	for _, l := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)
		`, order.ID, l.productID, l.quantity, l.unitPrice); err != nil {
			return nil, nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	// The cart row itself survives, empty, ready for the next order.
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE cart_id = ?", cartID,
	); err != nil {
		return nil, nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	return order, lines, nil
}

func buildReceipt(order *models.Order, lines []pricedLine, contact models.ReceiptCustomer) *models.Receipt {
	receipt := &models.Receipt{
		OrderNumber: order.OrderNumber,
		Total:       order.Total,
		CreatedAt:   order.CreatedAt,
		Customer:    contact,
	}

	for _, l := range lines {
		receipt.Items = append(receipt.Items, models.ReceiptLine{
			ProductID: l.productID,
			Name:      l.name,
			Quantity:  l.quantity,
			UnitPrice: l.unitPrice,
			LineTotal: l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity))),
		})
	}

	return receipt
}

// buyerFromContact splits the stored full name into the first/last pair
// the gateway expects.
func buyerFromContact(contact models.ReceiptCustomer) payment.Buyer {
	first, last, _ := strings.Cut(contact.FullName, " ")
	return payment.Buyer{
		FirstName: first,
		LastName:  last,
		Email:     contact.Email,
		Phone:     contact.Phone,
	}
}
