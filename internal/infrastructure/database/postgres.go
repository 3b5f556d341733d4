package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jumapesa/billing-api/internal/config"
	"github.com/jumapesa/billing-api/internal/domain/entity"
	"github.com/spf13/viper"
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
		// User-related entities
		&entity.User{},
		&entity.Role{},

		// Billing entities
		&entity.Currency{},
		&entity.Account{},
		&entity.Profile{},
		&entity.Invoice{},

		// Reference data
		&entity.County{},

		// System entities
		&entity.Notification{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, currencies, billing profile, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default roles
	roleNames := []string{entity.RoleAdmin, entity.RoleUser}
	for _, name := range roleNames {
		var existing entity.Role
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&entity.Role{Name: name}).Error; err != nil {
				log.Printf("Warning: failed to create role %s: %v", name, err)
			}
		}
	}

	// Create default currencies with display formatting
	currencies := []entity.Currency{
		{Abbr: "USD", Name: "US Dollar", Symbol: "$", Precision: 2, DecimalMark: ".", ThousandsSeparator: ",", SymbolFirst: true, SubunitName: "cent"},
		{Abbr: "EUR", Name: "Euro", Symbol: "€", Precision: 2, DecimalMark: ",", ThousandsSeparator: ".", SymbolFirst: false, SubunitName: "cent"},
		{Abbr: "GBP", Name: "British Pound", Symbol: "£", Precision: 2, DecimalMark: ".", ThousandsSeparator: ",", SymbolFirst: true, SubunitName: "penny"},
		{Abbr: "KES", Name: "Kenyan Shilling", Symbol: "KSh", Precision: 2, DecimalMark: ".", ThousandsSeparator: ",", SymbolFirst: true, SubunitName: "cent"},
	}
	for i := range currencies {
		var existing entity.Currency
		if err := db.Where("abbr = ?", currencies[i].Abbr).First(&existing).Error; err != nil {
			if err := db.Create(&currencies[i]).Error; err != nil {
				log.Printf("Warning: failed to create currency %s: %v", currencies[i].Abbr, err)
			}
		}
	}

	// Create the billing profile from environment if none exists
	var profileCount int64
	db.Model(&entity.Profile{}).Count(&profileCount)
	if profileCount == 0 {
		profileName := viper.GetString("PROFILE_NAME")
		if profileName != "" {
			profile := entity.Profile{
				Name:               profileName,
				Phone:              viper.GetString("PROFILE_PHONE"),
				Email:              viper.GetString("PROFILE_EMAIL"),
				LogoPath:           viper.GetString("PROFILE_LOGO_PATH"),
				ExchangeRateAPIKey: viper.GetString("EXCHANGE_RATE_API_KEY"),
			}
			if err := db.Create(&profile).Error; err != nil {
				log.Printf("Warning: failed to create billing profile: %v", err)
			} else {
				log.Printf("Billing profile created: %s", profileName)
			}
		} else {
			log.Println("Warning: no billing profile configured (set PROFILE_NAME to seed one)")
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			// Hash the password
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var adminRole entity.Role
				if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err == nil {
					if adminName == "" {
						adminName = "Admin"
					}
					// Split admin name into first and last name
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{adminRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
