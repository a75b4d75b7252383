package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/zisan5910/zisan-trader-pro/internal/config"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Inventory entities
		&entity.Product{},

		// Customer ledger entities
		&entity.Customer{},
		&entity.Payment{},

		// Sales entities
		&entity.Sale{},
		&entity.SaleItem{},

		// Mobile-banking ledger entities
		&entity.BankingTransaction{},

		// System entities
		&entity.CommissionSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// DefaultRateTable returns the stock commission rates per operator. These
// seed the settings row on first boot and remain editable afterwards.
func DefaultRateTable() ledger.RateTable {
	walletRates := ledger.OperatorRates{
		CashIn:   decimal.NewFromFloat(0.01),
		CashOut:  decimal.NewFromFloat(0.0185),
		Recharge: decimal.NewFromFloat(0.02),
	}
	bankRates := ledger.OperatorRates{
		CashIn:   decimal.NewFromFloat(0.01),
		CashOut:  decimal.NewFromFloat(0.018),
		Recharge: decimal.NewFromFloat(0.015),
	}

	return ledger.RateTable{
		"bkash":  walletRates,
		"nagad":  walletRates,
		"rocket": bankRates,
		"dbbl":   bankRates,
		"upay":   bankRates,
		"tap":    bankRates,
	}
}

// SeedDefaultData seeds the database with default data (commission rates, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Seed the commission rate table if no settings row exists yet
	var existing entity.CommissionSettings
	if err := db.First(&existing).Error; err != nil {
		settings := entity.CommissionSettings{
			Rates: entity.RateTableJSON(DefaultRateTable()),
		}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to seed commission rates: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Admin"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
