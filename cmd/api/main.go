package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshveld/fulfillment-api/internal/application/service"
	"github.com/freshveld/fulfillment-api/internal/config"
	"github.com/freshveld/fulfillment-api/internal/infrastructure/database"
	"github.com/freshveld/fulfillment-api/internal/infrastructure/repository"
	"github.com/freshveld/fulfillment-api/internal/jobs"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/handler"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/middleware"
	"github.com/freshveld/fulfillment-api/internal/presentation/http/routes"
	"github.com/freshveld/fulfillment-api/pkg/email"
	"github.com/freshveld/fulfillment-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, customerRepo, jwtManager)
	packingService := service.NewPackingService(orderRepo)
	ledgerService := service.NewLedgerService(invoiceRepo, paymentRepo, creditRepo, orderRepo, customerRepo)
	deliveryService := service.NewDeliveryService(orderRepo, userRepo, customerRepo, productRepo)
	catalogService := service.NewCatalogService(customerRepo, productRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Packing: handler.NewPackingHandler(packingService),
		Payment: handler.NewPaymentHandler(ledgerService),
		Credit:  handler.NewCreditHandler(ledgerService),
		Invoice: handler.NewInvoiceHandler(ledgerService),
		Order:   handler.NewOrderHandler(deliveryService),
		Catalog: handler.NewCatalogHandler(catalogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the overdue-invoice reminder loop
	if cfg.Reminder.Enabled {
		reminderJob := jobs.NewReminderJob(ledgerService, emailService, cfg.Reminder.Interval)
		go reminderJob.Start(ctx)
		log.Printf("Reminder job enabled (interval %v)", cfg.Reminder.Interval)
	}

	go middleware.CleanupExpiredKeys(ctx, idempotencyRepo, time.Hour)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
