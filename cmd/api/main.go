package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jumapesa/billing-api/internal/application/service"
	"github.com/jumapesa/billing-api/internal/config"
	"github.com/jumapesa/billing-api/internal/exchange"
	"github.com/jumapesa/billing-api/internal/infrastructure/database"
	"github.com/jumapesa/billing-api/internal/infrastructure/repository"
	"github.com/jumapesa/billing-api/internal/pdf"
	"github.com/jumapesa/billing-api/internal/presentation/http/handler"
	"github.com/jumapesa/billing-api/internal/presentation/http/routes"
	"github.com/jumapesa/billing-api/pkg/email"
	"github.com/jumapesa/billing-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.NewLogger(&cfg.App)

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
	roleRepo := repository.NewRoleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	currencyRepo := repository.NewCurrencyRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	countyRepo := repository.NewCountyRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Resolve the billing profile once at startup
	profile, err := profileRepo.Get(context.Background())
	if err != nil {
		log.Fatalf("Failed to load billing profile: %v", err)
	}
	if profile == nil {
		logger.Warn("no billing profile configured, document generation and currency conversion are unavailable")
	}

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize exchange rate client and invoice renderer
	rateSource := exchange.NewClient(cfg.Exchange.BaseURL, cfg.Exchange.Timeout, cfg.Exchange.RetryMax, logger)
	renderer := pdf.NewTypstRenderer(cfg.Renderer.TemplatePath, cfg.Renderer.FontDir, cfg.Storage.Path, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	invoiceService := service.NewInvoiceService(
		invoiceRepo,
		currencyRepo,
		accountRepo,
		userRepo,
		renderer,
		rateSource,
		emailService,
		profile,
		logger,
	)
	currencyService := service.NewCurrencyService(currencyRepo, accountRepo)
	countyService := service.NewCountyService(countyRepo, cfg.Storage.Path, logger)
	notificationService := service.NewNotificationService(notificationRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Currency:     handler.NewCurrencyHandler(currencyService),
		County:       handler.NewCountyHandler(countyService),
		Notification: handler.NewNotificationHandler(notificationService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
