package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fields map[string]string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		part, err := writer.CreateFormFile("image", "product.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestCreateProduct(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)
	expectNotBlacklisted(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnResult(sqlmock.NewResult(7, 1))

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Widget",
		"description": "A fine widget",
		"price":       "10.00",
		"quantity":    "5",
	}, []byte{0x89, 'P', 'N', 'G'})

	w := doRequest(s, "POST", "/products/", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestCreateProductNegativePrice(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)
	expectNotBlacklisted(mock)

	body, contentType := multipartBody(t, map[string]string{
		"name":  "Widget",
		"price": "-1.00",
	}, nil)

	w := doRequest(s, "POST", "/products/", token, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditProductNotOwner(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)
	expectNotBlacklisted(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(productRow("someone-else"))

	body, contentType := multipartBody(t, map[string]string{"name": "Hijacked"}, nil)
	w := doRequest(s, "PUT", "/products/edit/7", token, body, contentType)
	assert.Equal(t, http.StatusForbidden, w.Code)
	// No UPDATE was expected or issued.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditProductMalformedCategories(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)
	expectNotBlacklisted(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(productRow(testCustomer))

	body, contentType := multipartBody(t, map[string]string{
		"categories": "1,two,3",
	}, nil)
	w := doRequest(s, "PUT", "/products/edit/7", token, body, contentType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "malformed category list")
}

func TestEditProductReplacesCategories(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())
	token := issueTestToken(t, time.Hour)
	expectNotBlacklisted(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(productRow(testCustomer))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_categories WHERE product_id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_categories")).
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_categories")).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body, contentType := multipartBody(t, map[string]string{
		"name":       "Widget v2",
		"price":      "12.00",
		"categories": "1,3",
	}, nil)
	w := doRequest(s, "PUT", "/products/edit/7", token, body, contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllProductsEncodesImage(t *testing.T) {
	s, mock := newTestServer(t, payment.NewMockProvider())

	image := []byte{0x89, 'P', 'N', 'G'}
	mock.ExpectQuery(regexp.QuoteMeta("FROM products ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "quantity", "owner_uuid", "image", "created_at"}).
			AddRow(7, "Widget", "A fine widget", "10.00", 5, testCustomer, image, time.Now()).
			AddRow(9, "Gadget", "No picture", "5.50", 2, testCustomer, nil, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT product_id, category_id FROM product_categories")).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "category_id"}).AddRow(7, 1))

	w := doRequest(s, "GET", "/allproducts", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var products []models.ProductResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)

	require.NotNil(t, products[0].Image)
	assert.Equal(t, base64.StdEncoding.EncodeToString(image), *products[0].Image)
	assert.Equal(t, []int64{1}, products[0].CategoryIDs)
	assert.Nil(t, products[1].Image)
	assert.Equal(t, testCustomer, products[0].Owner.UUID)
}

func productRow(owner string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "quantity", "owner_uuid", "image", "created_at"}).
		AddRow(7, "Widget", "A fine widget", "10.00", 5, owner, nil, time.Now())
}
