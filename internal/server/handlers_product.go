package server

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/store"
	"github.com/shopspring/decimal"
)

func (s *Server) createProduct(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	price, err := decimal.NewFromString(c.PostForm("price"))
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
		return
	}

	quantity := 0
	if qtyStr := c.PostForm("quantity"); qtyStr != "" {
		quantity, err = strconv.Atoi(qtyStr)
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a non-negative integer"})
			return
		}
	}

	image, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Quantity:    quantity,
		OwnerUUID:   currentCustomer(c),
		Image:       image,
	}

	id, err := s.products.Create(c.Request.Context(), product)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product created", "id": id})
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	product, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	categoryIDs, err := s.products.CategoryIDs(c.Request.Context(), id)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, productResponse(product, categoryIDs))
}

func (s *Server) editProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	existing, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	// Only the owner may edit; checked before any mutation.
	if existing.OwnerUUID != currentCustomer(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the product owner"})
		return
	}

	updated := *existing
	if name := c.PostForm("name"); name != "" {
		updated.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		updated.Description = description
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := decimal.NewFromString(priceStr)
		if err != nil || price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
			return
		}
		updated.Price = price
	}
	if qtyStr := c.PostForm("quantity"); qtyStr != "" {
		quantity, err := strconv.Atoi(qtyStr)
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a non-negative integer"})
			return
		}
		updated.Quantity = quantity
	}

	if _, fileErr := c.FormFile("image"); fileErr == nil {
		image, err := readImageFile(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		updated.Image = image
	}

	categoryIDs, err := parseCategoryList(c.PostForm("categories"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed category list"})
		return
	}

	if err := s.products.Update(c.Request.Context(), &updated, categoryIDs); err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

func (s *Server) listAllProducts(c *gin.Context) {
	products, categories, err := s.products.ListAll(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, productResponse(&products[i], categories[products[i].ID]))
	}

	c.JSON(http.StatusOK, responses)
}

// readImageFile reads the uploaded multipart image, or returns nil when the
// field is absent.
func readImageFile(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.New("failed to open uploaded image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("failed to read uploaded image")
	}

	return data, nil
}

// parseCategoryList parses the comma-separated category id form field.
// An empty field means "no categories".
func parseCategoryList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// productResponse converts a product row to its wire shape, with the image
// blob base64-encoded or null.
func productResponse(p *models.Product, categoryIDs []int64) models.ProductResponse {
	var image *string
	if len(p.Image) > 0 {
		encoded := base64.StdEncoding.EncodeToString(p.Image)
		image = &encoded
	}

	return models.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Owner:       models.OwnerRef{UUID: p.OwnerUUID},
		Image:       image,
		CategoryIDs: categoryIDs,
	}
}
