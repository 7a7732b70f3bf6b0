// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/techstore/techstore-backend/internal/config"
	"github.com/techstore/techstore-backend/internal/gateway"
	"github.com/techstore/techstore-backend/internal/handlers"
	"github.com/techstore/techstore-backend/internal/middleware"
	"github.com/techstore/techstore-backend/internal/services"
	"github.com/techstore/techstore-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Set JWT secret before anything mints or validates a token
	utils.SetJWTSecret(cfg.Auth.SecretKey)

	node := cfg.Node.Name

	// The gateway is optional: a node with no configured peer still serves
	// its local operations, forwards just have nowhere to go.
	var peer services.PeerClient
	if cfg.Peer.BaseURL != "" {
		peer = gateway.NewClient(cfg.Peer, node)
	}
	forwardTimeout := time.Duration(cfg.Peer.ForwardTimeout) * time.Second

	// Initialize services
	ledgerService := services.NewLedgerService(db, node)
	sequenceService := services.NewSequenceService(db, node)
	customerService := services.NewCustomerService(db, node, peer, forwardTimeout)
	checkoutService := services.NewCheckoutService(db, node, ledgerService, customerService, sequenceService)
	transferService := services.NewTransferService(db, node, ledgerService, peer, forwardTimeout)
	catalogService := services.NewCatalogService(db, node, ledgerService, transferService)
	employeeService := services.NewEmployeeService(db, node)
	reportService := services.NewReportService(db, node)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService, ledgerService, peer, node)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	transferHandler := handlers.NewTransferHandler(transferService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, cfg)
	reportHandler := handlers.NewReportHandler(reportService)
	internalHandler := handlers.NewInternalHandler(customerService, transferService, ledgerService, node)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(node))
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"node":   node,
		})
	})

	// API v1 routes. AuthContext applies to the public surface only; peer
	// tokens never build an auth context here, and the /internal group below
	// makes its own auth decision via PeerRequired.
	v1 := r.Group("/v1")
	v1.Use(middleware.AuthContext(node))
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", employeeHandler.Login)
		}

		// Product and stock routes
		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.ListProducts)
			products.GET("/:id/stock", catalogHandler.CheckStock)

			// Employee-only catalog management
			protected := products.Group("")
			protected.Use(middleware.EmployeeRequired())
			{
				protected.POST("", catalogHandler.AddProduct)
				protected.PUT("/:id", catalogHandler.UpdateProduct)
				protected.DELETE("/:id", catalogHandler.DeleteProduct)
				protected.DELETE("/:id/local-inventory", catalogHandler.DeleteLocalInventory)
			}
		}

		// Checkout (customers and guests; employees are rejected downstream)
		v1.POST("/checkout", middleware.CheckoutRateLimit(), checkoutHandler.Checkout)

		// Shipment routes
		shipments := v1.Group("/shipments")
		shipments.Use(middleware.EmployeeRequired())
		{
			shipments.POST("", transferHandler.Send)
			shipments.POST("/receive", transferHandler.Receive)
			shipments.GET("/:id", transferHandler.GetShipment)
		}

		// Employee management
		employees := v1.Group("/employees")
		employees.Use(middleware.EmployeeRequired())
		{
			employees.POST("", employeeHandler.AddEmployee)
		}

		// Reports
		reports := v1.Group("/reports")
		reports.Use(middleware.EmployeeRequired())
		{
			reports.GET("/:entity", reportHandler.Run)
		}

		// Dashboard
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.EmployeeRequired())
		{
			dashboard.GET("/stats", reportHandler.Dashboard)
		}
	}

	// Node-to-node gateway; peer tokens only
	internal := r.Group("/internal")
	internal.Use(middleware.PeerRequired(node))
	{
		internal.POST("/customers", internalHandler.UpsertCustomer)
		internal.POST("/shipments", internalHandler.ReplicateShipment)
		internal.GET("/shipments/:id", internalHandler.GetShipment)
		internal.GET("/stock/:id", internalHandler.GetStock)
	}

	return r
}
