package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdg-garage/hotel-reservation-api/internal/config"
	"github.com/gdg-garage/hotel-reservation-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the given driver ("sqlite" or "mysql").
func Open(driver, dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if dialector.Name() == "sqlite" {
		// One connection: in-memory databases live per connection and sqlite
		// allows a single writer anyway.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.Login{},
		&models.Guest{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
		&models.BookingHistory{},
	)
}

func Connect(cfg *config.Config) *gorm.DB {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	db, err := Open(cfg.DatabaseDriver, cfg.DSN(), gormLogger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if err := Seed(db, SeedOptions{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		ExampleData:   cfg.SeedExampleData,
	}); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	return db
}
