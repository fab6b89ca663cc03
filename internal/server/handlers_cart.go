package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/storefront/internal/checkout"
	"github.com/matthieukhl/storefront/internal/store"
)

func (s *Server) addToCart(c *gin.Context) {
	productID, err := strconv.ParseInt(c.PostForm("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
		return
	}

	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil || quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
		return
	}

	cartID, err := s.carts.AddItem(c.Request.Context(), currentCustomer(c), productID, quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart_id": cartID})
}

func (s *Server) getCart(c *gin.Context) {
	cart, err := s.carts.GetByCustomer(c.Request.Context(), currentCustomer(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "cart is empty"})
			return
		}
		s.serverError(c, err)
		return
	}

	items, err := s.carts.Items(c.Request.Context(), cart.ID)
	if err != nil {
		s.serverError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart is empty"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (s *Server) checkoutCart(c *gin.Context) {
	cartID, err := strconv.ParseInt(c.PostForm("cart_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart_id"})
		return
	}

	receipt, err := s.checkout.Checkout(c.Request.Context(), currentCustomer(c), cartID)
	if err != nil {
		var paymentErr *checkout.PaymentError
		switch {
		case errors.As(err, &paymentErr):
			// The order is committed; only payment setup failed. Return the
			// receipt so the caller can retry payment out of band.
			c.JSON(http.StatusBadGateway, gin.H{
				"receipt":       paymentErr.Receipt,
				"payment_error": paymentErr.Err.Error(),
			})
		case errors.Is(err, checkout.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		case errors.Is(err, checkout.ErrNotCartOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusNotFound, gin.H{"error": "cart is empty"})
		case errors.Is(err, checkout.ErrProductUnavailable):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			s.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, receipt)
}
