package server

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/matthieukhl/storefront/internal/auth"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := strings.NewReader(`{"user_name":"ada","email":"a@b.com","password":"long-password","full_name":"Ada Lovelace"}`)
	w := doRequest(s, "POST", "/customers/", "", body, "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "uuid")
	assert.Contains(t, w.Body.String(), "Customer created")
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO customers")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	body := strings.NewReader(`{"user_name":"ada","email":"a@b.com","password":"long-password"}`)
	w := doRequest(s, "POST", "/customers/", "", body, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestCreateCustomerRejectsShortPassword(t *testing.T) {
	s, _ := newTestServer(t, payment.NewMockProvider())

	body := strings.NewReader(`{"user_name":"ada","email":"a@b.com","password":"short"}`)
	w := doRequest(s, "POST", "/customers/", "", body, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginIssuesAndRecordsToken(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	hash, err := auth.HashPassword("long-password")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = ?")).
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "user_name", "email", "password", "full_name", "phone", "created_at"}).
			AddRow(testCustomer, "ada", "a@b.com", hash, "Ada Lovelace", "+62811", time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tokens")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := strings.NewReader(`{"email":"a@b.com","password":"long-password"}`)
	w := doRequest(s, "POST", "/login", "", body, "application/json")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), `"token_type":"bearer"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	hash, err := auth.HashPassword("long-password")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "user_name", "email", "password", "full_name", "phone", "created_at"}).
			AddRow(testCustomer, "ada", "a@b.com", hash, "Ada Lovelace", "+62811", time.Now()))

	body := strings.NewReader(`{"email":"a@b.com","password":"wrong-password"}`)
	w := doRequest(s, "POST", "/login", "", body, "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLoginUnknownEmailSameAnswer(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}))

	body := strings.NewReader(`{"email":"nobody@b.com","password":"whatever-pass"}`)
	w := doRequest(s, "POST", "/login", "", body, "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestLoginStoreFailureIs500(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	// A broken store must not masquerade as bad credentials.
	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE email = ?")).
		WillReturnError(errors.New("connection refused"))

	body := strings.NewReader(`{"email":"a@b.com","password":"long-password"}`)
	w := doRequest(s, "POST", "/login", "", body, "application/json")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "invalid email or password")
}

func TestLogoutBlacklistsToken(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)

	expectNotBlacklisted(mock)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO token_blacklist")).
		WithArgs(token, testCustomer).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doRequest(s, "POST", "/logout", token, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully logged out")
}

func TestLogoutTwice(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)

	// Second logout with the same token: middleware sees the blacklist row
	// and rejects before the handler runs.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM token_blacklist WHERE token = ?")).
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	w := doRequest(s, "POST", "/logout", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
