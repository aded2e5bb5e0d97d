package database

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arnold/visiongoals/internal/config"
	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/storage"
)

// MemoryURL selects the in-process key-value store instead of a database.
const MemoryURL = "memory"

func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	// Use PostgreSQL if URL starts with postgres, otherwise SQLite
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	level := logger.Warn
	if cfg.Debug() {
		level = logger.Info
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.KVEntry{})
}

// OpenKeyValue returns the key-value backend selected by cfg.DatabaseURL,
// migrated and ready for a LocalStore.
func OpenKeyValue(cfg *config.Config) (storage.KeyValue, error) {
	if cfg.DatabaseURL == MemoryURL {
		return storage.NewMemoryKV(), nil
	}

	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return storage.NewGormKV(db), nil
}
