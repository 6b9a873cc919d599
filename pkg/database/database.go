package database

import (
	"fmt"
	"time"

	"eventshare-service/internal/model"
	"eventshare-service/pkg/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB initializes the database connection
func InitDB(cfg *config.Config, log *zap.Logger) error {
	// Set up GORM logger configuration
	var logLevel logger.LogLevel
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	} else {
		logLevel = logger.Error
	}

	// Override log level if explicitly set in config
	switch cfg.Database.LogLevel {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	case "info":
		logLevel = logger.Info
	}

	// Build DSN from config
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// Configure GORM and open connection. TranslateError lets callers
	// detect unique-constraint races as gorm.ErrDuplicatedKey.
	var err error
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Run migrations
	start := time.Now()
	log.Info("Starting database migration...")

	if err := Migrate(db); err != nil {
		log.Error("Database migration failed", zap.Error(err))
		return err
	}

	log.Info("Database migration completed successfully",
		zap.Duration("duration", time.Since(start)))

	return nil
}

// GetDB returns a reference to the database instance
func GetDB() *gorm.DB {
	return db
}

// Migrate applies the schema and seeds the static reference lists. It is
// exported so tests can run it against their own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.Event{},
		&model.Category{},
		&model.Interest{},
		&model.Attendance{},
		&model.Comment{},
	); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return seedReferenceData(db)
}

// Category and interest rows are static reference lists; seed them only
// when the tables are empty.
func seedReferenceData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count == 0 {
		categories := []model.Category{
			{Name: "Music"}, {Name: "Sports"}, {Name: "Outdoors"},
			{Name: "Food & Drink"}, {Name: "Arts"}, {Name: "Tech"},
			{Name: "Language Exchange"}, {Name: "Wellness"},
		}
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	if err := db.Model(&model.Interest{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count interests: %w", err)
	}
	if count == 0 {
		interests := []model.Interest{
			{Name: "Music"}, {Name: "Sports"}, {Name: "Travel"},
			{Name: "Cooking"}, {Name: "Photography"}, {Name: "Tech"},
			{Name: "Languages"}, {Name: "Volunteering"},
		}
		if err := db.Create(&interests).Error; err != nil {
			return fmt.Errorf("failed to seed interests: %w", err)
		}
	}
	return nil
}
