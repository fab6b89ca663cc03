package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/matthieukhl/storefront/internal/auth"
	"github.com/matthieukhl/storefront/internal/checkout"
	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/payment"
	"github.com/matthieukhl/storefront/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	router   *gin.Engine
	db       *database.DB
	cfg      *config.Config
	logger   *zap.Logger
	issuer   *auth.TokenIssuer
	checkout *checkout.Service

	customers *store.CustomerStore
	tokens    *store.TokenStore
	products  *store.ProductStore
	carts     *store.CartStore
	orders    *store.OrderStore
	logs      *store.LogStore
}

// NewServer creates a new server instance
func NewServer(db *database.DB, cfg *config.Config, provider payment.Provider, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", cfg.Auth.TokenHeader},
		AllowCredentials: true,
	}))

	server := &Server{
		router:    router,
		db:        db,
		cfg:       cfg,
		logger:    logger,
		issuer:    auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL),
		checkout:  checkout.NewService(db, provider, logger),
		customers: store.NewCustomerStore(db),
		tokens:    store.NewTokenStore(db),
		products:  store.NewProductStore(db),
		carts:     store.NewCartStore(db),
		orders:    store.NewOrderStore(db),
		logs:      store.NewLogStore(db),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/api", s.welcome)
	s.router.GET("/api/health", s.healthCheck)

	s.router.POST("/customers/", s.createCustomer)
	s.router.POST("/login", s.login)
	s.router.GET("/allproducts", s.listAllProducts)

	authorized := s.router.Group("/")
	authorized.Use(s.requireToken())
	{
		authorized.POST("/logout", s.logout)
		authorized.GET("/customers/:uuid", s.getCustomer)
		authorized.PUT("/customers/", s.updateProfile)

		authorized.POST("/products/", s.createProduct)
		authorized.GET("/products/:id", s.getProduct)
		authorized.PUT("/products/edit/:id", s.editProduct)

		authorized.POST("/cart/add", s.addToCart)
		authorized.GET("/cart/", s.getCart)
		authorized.POST("/cart/checkout", s.checkoutCart)

		authorized.POST("/orders/", s.createOrder)
		authorized.GET("/orders/:id", s.getOrder)

		authorized.POST("/shipments/", s.createShipment)
		authorized.GET("/shipments/:id", s.getShipment)
		authorized.POST("/orderlogs/", s.createOrderLog)
		authorized.GET("/orderlogs/:id", s.getOrderLog)
		authorized.POST("/shipmentlogs/", s.createShipmentLog)
		authorized.GET("/shipmentlogs/:id", s.getShipmentLog)
	}
}

// serverError logs a store or infrastructure failure and answers 500.
func (s *Server) serverError(c *gin.Context, err error) {
	s.logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// welcome endpoint, kept as a liveness probe for clients
func (s *Server) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the API"})
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	// Check database health
	if err := s.db.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "storefront",
		"version": "0.1.0",
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
