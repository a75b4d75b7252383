package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zisan5910/zisan-trader-pro/internal/application/service"
	"github.com/zisan5910/zisan-trader-pro/internal/cache"
	"github.com/zisan5910/zisan-trader-pro/internal/config"
	"github.com/zisan5910/zisan-trader-pro/internal/infrastructure/database"
	"github.com/zisan5910/zisan-trader-pro/internal/infrastructure/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/handler"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/routes"
	"github.com/zisan5910/zisan-trader-pro/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
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
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	bankingRepo := repository.NewBankingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize rate cache; without a redis address every read falls
	// through to the database
	var rateCache cache.RateCache = cache.NoopRateCache{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisRateCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("Warning: redis unavailable, rate caching disabled: %v", err)
		} else {
			rateCache = redisCache
		}
		cancel()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, &cfg.Ledger)
	customerService := service.NewCustomerService(customerRepo, paymentRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, customerRepo)
	settingsService := service.NewSettingsService(settingsRepo, rateCache)
	bankingService := service.NewBankingService(bankingRepo, settingsService)
	reportService := service.NewReportService(saleRepo, bankingRepo, productRepo, customerRepo, &cfg.Ledger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Sale:     handler.NewSaleHandler(saleService),
		Banking:  handler.NewBankingHandler(bankingService),
		Settings: handler.NewSettingsHandler(settingsService),
		Report:   handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	// Nightly retention cleanup for old sales
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := reportService.CleanupExpiredSales(context.Background()); err != nil {
				log.Printf("Warning: retention cleanup failed: %v", err)
			}
		}
	}()

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
