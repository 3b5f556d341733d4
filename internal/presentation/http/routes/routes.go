package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jumapesa/billing-api/internal/config"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	domainRepo "github.com/jumapesa/billing-api/internal/domain/repository"
	"github.com/jumapesa/billing-api/internal/presentation/http/handler"
	"github.com/jumapesa/billing-api/internal/presentation/http/middleware"
	"github.com/jumapesa/billing-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Invoice      *handler.InvoiceHandler
	Currency     *handler.CurrencyHandler
	County       *handler.CountyHandler
	Notification *handler.NotificationHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
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

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	registerInvoiceRoutes(protected, h, deps)
	registerCurrencyRoutes(protected, h)
	registerCountyRoutes(protected, h)
	registerNotificationRoutes(protected, h)
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		// Invoice creation and document side effects use idempotency keys to
		// prevent duplicate serials, files and notifications
		invoices.POST("", idempotency, h.Invoice.Create)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.PATCH("/:id/status", h.Invoice.UpdateStatus)
		invoices.POST("/:id/pdf", idempotency, h.Invoice.GeneratePDF)
		invoices.POST("/:id/convert-currency", idempotency, h.Invoice.ConvertCurrency)
	}
}

func registerCurrencyRoutes(protected *gin.RouterGroup, h *Handlers) {
	currencies := protected.Group("/currencies")
	{
		currencies.GET("", h.Currency.List)
		currencies.GET("/:id", h.Currency.Get)
	}

	accounts := protected.Group("/accounts")
	{
		accounts.GET("", h.Currency.ListAccounts)
		accounts.POST("", middleware.RequireRole(entity.RoleAdmin), h.Currency.CreateAccount)
	}
}

func registerCountyRoutes(protected *gin.RouterGroup, h *Handlers) {
	counties := protected.Group("/counties")
	{
		counties.GET("", h.County.List)
		counties.GET("/:id", h.County.Get)

		// Mutations and export are admin operations
		admin := counties.Group("")
		admin.Use(middleware.RequireRole(entity.RoleAdmin))
		{
			admin.POST("", h.County.Create)
			admin.PUT("/:id", h.County.Update)
			admin.DELETE("/:id", h.County.Delete)
			admin.POST("/export", h.County.Export)
		}
	}
}

func registerNotificationRoutes(protected *gin.RouterGroup, h *Handlers) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.Notification.List)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.POST("/:id/read", h.Notification.MarkRead)
		notifications.POST("/read-all", h.Notification.MarkAllRead)
	}
}
