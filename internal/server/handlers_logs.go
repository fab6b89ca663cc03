package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/store"
)

func (s *Server) createOrder(c *gin.Context) {
	var req models.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Total.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "total must be non-negative"})
		return
	}
	if req.Status == "" {
		req.Status = models.OrderStatusPending
	}

	order, err := s.orders.Create(c.Request.Context(), currentCustomer(c), req.Total, req.Status)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order created", "order": order})
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, items, err := s.orders.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

func (s *Server) createShipment(c *gin.Context) {
	var req models.ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.logs.CreateShipment(c.Request.Context(), req.OrderID, req.ShipmentStatus)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shipment created", "id": id})
}

func (s *Server) getShipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	shipment, err := s.logs.GetShipment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, shipment)
}

func (s *Server) createOrderLog(c *gin.Context) {
	var req models.OrderLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.logs.CreateOrderLog(c.Request.Context(), req.OrderID, req.OrderStatus)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OrderLog created", "id": id})
}

func (s *Server) getOrderLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	log, err := s.logs.GetOrderLog(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order log not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

func (s *Server) createShipmentLog(c *gin.Context) {
	var req models.ShipmentLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.logs.CreateShipmentLog(c.Request.Context(), req.ShipmentID, req.ShipmentStatus)
	if err != nil {
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ShipmentLog created", "id": id})
}

func (s *Server) getShipmentLog(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	log, err := s.logs.GetShipmentLog(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "shipment log not found"})
			return
		}
		s.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, log)
}

// pathID parses the :id path parameter, answering 400 itself on failure.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
