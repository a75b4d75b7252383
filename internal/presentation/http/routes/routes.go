package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zisan5910/zisan-trader-pro/internal/config"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/handler"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/middleware"
	"github.com/zisan5910/zisan-trader-pro/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Sale     *handler.SaleHandler
	Banking  *handler.BankingHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

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

		registerProtectedRoutes(protected, h)
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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Report.Dashboard)

	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerSaleRoutes(protected, h)
	registerBankingRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.LowStock)
		products.GET("/export", h.Product.Export)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/due", h.Customer.ListDue)
		customers.GET("/export", h.Customer.Export)
		customers.POST("/import", h.Customer.Import)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.POST("/:id/payments", h.Customer.CollectPayment)
		customers.GET("/:id/payments", h.Customer.ListPayments)
	}
}

func registerSaleRoutes(rg *gin.RouterGroup, h *Handlers) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", h.Sale.Create)
		sales.POST("/bulk-delete", h.Sale.BulkDelete)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Delete)
	}
}

func registerBankingRoutes(rg *gin.RouterGroup, h *Handlers) {
	banking := rg.Group("/banking")
	{
		banking.GET("", h.Banking.List)
		banking.POST("", h.Banking.Create)
		banking.GET("/summary", h.Banking.Summary)
		banking.GET("/:id", h.Banking.Get)
		banking.PUT("/:id", h.Banking.Update)
		banking.DELETE("/:id", h.Banking.Delete)
	}
}

func registerSettingsRoutes(rg *gin.RouterGroup, h *Handlers) {
	settings := rg.Group("/settings")
	{
		settings.GET("/rates", h.Settings.GetRates)
		settings.PUT("/rates", h.Settings.UpdateRates)
		settings.POST("/rates/reset", h.Settings.ResetRates)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/export", h.Report.Export)
		reports.POST("/cleanup", h.Report.Cleanup)
	}
}
