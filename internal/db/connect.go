package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/seedbed/trellis/internal/config"
)

// Open connects to the garden database selected by the storage config:
// a local SQLite file by default, or MySQL when a DSN is configured.
func Open(sc config.StorageConfig) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	switch sc.Driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(sc.Path), cfg)
		if err != nil {
			return nil, fmt.Errorf("db: open sqlite %s: %w", sc.Path, err)
		}
		return db, nil
	case "mysql":
		db, err := gorm.Open(mysql.Open(sc.DSN), cfg)
		if err != nil {
			return nil, fmt.Errorf("db: connect mysql: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", sc.Driver)
	}
}

// OpenMemory opens an in-memory SQLite database, used by tests.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open in-memory sqlite: %w", err)
	}
	return db, nil
}
