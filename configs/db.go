package configs

import (
	"fmt"

	"foodcart/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// OpenDB opens the database named by driver and source without touching the
// package-level handle. Tests use it with an in-memory sqlite source.
func OpenDB(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(source)
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
}

func ConnectionDB(cfg *Config) error {
	database, err := OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	db = database
	return nil
}

// Migrate the schema
func SetupDatabase(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{}, &entity.OptionGroup{}, &entity.OptionValue{}, &entity.MenuImage{},
		&entity.DeliveryZone{}, &entity.Address{}, &entity.Branch{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Favorite{},
	)
}
