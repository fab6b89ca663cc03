package server

import (
	"io"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/storefront/internal/auth"
	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret   = "test-secret"
	testCustomer = "11111111-1111-1111-1111-111111111111"
)

func newTestServer(t *testing.T, provider payment.Provider) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{
			Addr:        ":0",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		Auth: config.AuthConfig{
			SecretKey:   testSecret,
			TokenTTL:    time.Hour,
			TokenHeader: "X-Token",
		},
		Payment: config.PaymentConfig{Provider: "mock"},
	}

	return NewServer(&database.DB{DB: db}, cfg, provider, zap.NewNop()), mock
}

func issueTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()

	token, _, err := auth.NewTokenIssuer(testSecret, ttl).Issue(testCustomer)
	require.NoError(t, err)
	return token
}

// expectNotBlacklisted satisfies the middleware's blacklist probe.
func expectNotBlacklisted(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM token_blacklist WHERE token = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
}

func doRequest(s *Server, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("X-Token", token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}
