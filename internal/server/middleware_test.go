package server

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/stretchr/testify/assert"
)

func TestRequireTokenMissing(t *testing.T) {
	s, _ := newTestServer(t, payment.NewMockProvider())

	w := doRequest(s, "GET", "/cart/", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing token")
}

// An expired token is rejected even though it was never blacklisted; the
// blacklist is not consulted at all.
func TestRequireTokenExpired(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, -time.Minute)

	w := doRequest(s, "GET", "/cart/", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireTokenInvalidSignature(t *testing.T) {
	s, _ := newTestServer(t, payment.NewMockProvider())

	w := doRequest(s, "GET", "/cart/", "not-a-real-token", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

// A blacklisted token is rejected even though it has not expired.
func TestRequireTokenBlacklisted(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM token_blacklist WHERE token = ?")).
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	w := doRequest(s, "GET", "/cart/", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "blacklisted")
}

func TestRequireTokenValid(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)

	expectNotBlacklisted(mock)
	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE uuid = ?")).
		WithArgs(testCustomer).
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "user_name", "email", "password", "full_name", "phone", "created_at"}).
			AddRow(testCustomer, "ada", "a@b.com", "hash", "Ada Lovelace", "+62811", time.Now()))

	w := doRequest(s, "GET", "/customers/"+testCustomer, token, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.com")
	// Password hash never leaves the server.
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestWelcome(t *testing.T) {
	s, _ := newTestServer(t, payment.NewMockProvider())

	w := doRequest(s, "GET", "/api", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to the API")
}
