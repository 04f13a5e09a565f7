// database/bootstrap.go
package database

import (
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrow/config"
	"agrow/entities"
	"agrow/pkg/logging"
)

// Models is every table the service owns, in migration order.
var Models = []any{
	&entities.Crop{},
	&entities.Task{},
	&entities.RecommendationLog{},
	&entities.ChatMessage{},
	&entities.UserPreference{},
	&entities.KBDocument{},
	&entities.KBChunk{},
}

// Open connects to the configured backend. sqlite is the embedded default;
// postgres is the hosted backend and needs DATABASE_URL.
func Open(cfg config.AppConfig) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "", "sqlite":
		dial = sqlite.Open(cfg.DBPath)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
		dial = postgres.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	lvl := logger.Warn
	if cfg.LogLevel == "debug" {
		lvl = logger.Info
	}
	gl := logger.New(logging.Log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
	db, err := gorm.Open(dial, &gorm.Config{Logger: gl})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}
	logging.Log.WithField("driver", cfg.DBDriver).Info("[db] connected")
	return db, nil
}

// OpenSQLite is the shortcut used by tests and the offline CLI.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := Open(config.AppConfig{DBDriver: "sqlite", DBPath: path})
	if err != nil {
		return nil, err
	}
	return db, Migrate(db)
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
