package routes

import (
	"time"

	"github.com/freshveld/fulfillment-api/internal/config"
	domainRepo "github.com/freshveld/fulfillment-api/internal/domain/repository"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/handler"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/middleware"
	"github.com/freshveld/fulfillment-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Packing *handler.PackingHandler
	Payment *handler.PaymentHandler
	Credit  *handler.CreditHandler
	Invoice *handler.InvoiceHandler
	Order   *handler.OrderHandler
	Catalog *handler.CatalogHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Account provisioning is staff-only; the seed admin bootstraps the first
	// login
	protected.POST("/auth/register", middleware.RequireRole("admin"), h.Auth.Register)
	protected.GET("/profile", h.Auth.GetProfile)

	// Packing lists
	packing := protected.Group("/packing-lists")
	packing.Use(middleware.RequireRole("admin", "driver"))
	{
		packing.GET("/order/:orderId", h.Packing.GetSheet)
		packing.GET("/date/:date", h.Packing.GetBatch)
		packing.POST("/pdf", h.Packing.RenderPDF)
	}

	// Financial POSTs replay cached responses on client retries
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	// Payments
	payments := protected.Group("/payments")
	{
		payments.POST("", idempotency, h.Payment.Record)
		payments.GET("/:id", h.Payment.Get)
		payments.GET("/customer/:customerId", h.Payment.ListByCustomer)
		payments.GET("/invoice/:invoiceId", h.Payment.ListByInvoice)
	}

	// Credits
	credits := protected.Group("/credits")
	{
		credits.POST("/short-delivery", idempotency, h.Credit.RecordShortDelivery)
		credits.POST("/apply", idempotency, h.Credit.Apply)
		credits.GET("/customer/:customerId", h.Credit.GetCustomerCredits)
	}

	// Invoices
	invoices := protected.Group("/invoices")
	{
		invoices.POST("", idempotency, h.Invoice.Create)
		invoices.GET("/overdue", h.Invoice.ListOverdue)
		invoices.GET("/:id", h.Invoice.Get)
	}

	// Orders (delivery side)
	orders := protected.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/date/:date", h.Order.ListByDate)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.PATCH("/:id/driver", h.Order.AssignDriver)
	}

	// Customer book (staff only)
	customers := protected.Group("/customers")
	{
		customers.GET("/:id", h.Catalog.GetCustomer)
		customers.GET("", middleware.RequireRole("admin"), h.Catalog.ListCustomers)
		customers.POST("", middleware.RequireRole("admin"), h.Catalog.CreateCustomer)
		customers.PUT("/:id", middleware.RequireRole("admin"), h.Catalog.UpdateCustomer)
	}

	// Product catalog
	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
		products.POST("", middleware.RequireRole("admin"), h.Catalog.CreateProduct)
		products.PUT("/:id", middleware.RequireRole("admin"), h.Catalog.UpdateProduct)
	}
}
