package database

import (
	"fmt"

	"github.com/quillblog/core/internal/config"
	"github.com/quillblog/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database and runs auto-migration.
func Connect(cfg *config.AppConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Silent
	}

	var dialector gorm.Dialector
	switch cfg.Database.Dialect {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:               cfg.Database.DSN,
			DefaultStringSize: 191,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Database.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.ProfileModel{},
		&models.CategoryModel{},
		&models.TagModel{},
		&models.PostModel{},
		&models.CommentModel{},
	)
}
