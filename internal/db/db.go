package db

import (
	"fmt"

	"go-ipconf/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(driver, dsn string) error {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	err = conn.AutoMigrate(&models.Device{}, &models.Report{}, &models.ReportDevice{}, &models.ReportInterface{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	DB = conn
	return nil
}
