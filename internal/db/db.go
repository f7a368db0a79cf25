// Package db opens the gorm connection for the configured engine.
package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AppShell-Admin/AppShell-Admin/internal/config"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/dsn"
	"github.com/AppShell-Admin/AppShell-Admin/internal/db/models"
	"github.com/AppShell-Admin/AppShell-Admin/internal/logger/adapter/stdlogger"
)

// ErrUnknownEngine is returned for unsupported GormEngine values.
var ErrUnknownEngine = errors.New("unknown gorm engine")

const slowQuery = 500 * time.Millisecond

// Dialector returns the gorm dialector for cfg.DB.GormEngine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.GormEngineMySQL, "":
		return mysql.Open(dsn.MySQL(cfg)), nil
	case config.GormEnginePostgres:
		return postgres.Open(dsn.Postgres(cfg)), nil
	case config.GormEngineSQLite:
		return sqlite.Open(cfg.DB.Name), nil
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.DB.GormEngine)
	}
}

// Open connects to the database and migrates every model.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.DB.LogSQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(stdlogger.New(), gormlogger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "connect %s database", cfg.DB.GormEngine)
	}

	if cfg.DB.GormEngine == config.GormEngineSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}

		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(models.All()...); err != nil {
		return nil, errors.Wrap(err, "migrate database")
	}

	return db, nil
}
