package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/matthieukhl/storefront/internal/auth"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/store"
)

func (s *Server) createCustomer(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.serverError(c, err)
		return
	}

	customer := &models.Customer{
		UUID:     uuid.NewString(),
		UserName: req.UserName,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Phone:    req.Phone,
	}

	if err := s.customers.Create(c.Request.Context(), customer); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer created",
		"uuid":    customer.UUID,
	})
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := s.customers.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.serverError(c, err)
		return
	}
	if err != nil || !auth.CheckPassword(customer.Password, req.Password) {
		// Same answer for unknown email and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, expiresAt, err := s.issuer.Issue(customer.UUID)
	if err != nil {
		s.serverError(c, err)
		return
	}

	if err := s.tokens.Record(c.Request.Context(), token, customer.UUID, expiresAt); err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (s *Server) logout(c *gin.Context) {
	token := c.GetString(ctxToken)

	err := s.tokens.Blacklist(c.Request.Context(), token, currentCustomer(c))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token is already blacklisted"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

func (s *Server) getCustomer(c *gin.Context) {
	customer, err := s.customers.GetByUUID(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.customers.UpdateProfile(c.Request.Context(),
		currentCustomer(c), req.UserName, req.FullName, req.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
