package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventpix/backend/models"
)

// Init opens the SQLite database and migrates the pipeline's schema.
func Init(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// write-ahead logging for better concurrency between the watcher,
	// the HTTP handlers and the archival side-channel
	if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
		zap.L().Warn("failed to set WAL mode", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	err = db.AutoMigrate(
		&models.BrandingTemplate{},
		&models.GlobalSettings{},
		&models.Event{},
		&models.Moment{},
		&models.Photo{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate failed: %w", err)
	}

	zap.L().Info("database initialized", zap.String("path", dataSourceName))
	return db, nil
}
