package database

import (
	"fmt"
	"time"

	"kore-landing-backend/internal/config"
	"kore-landing-backend/internal/database/models"
	apperrors "kore-landing-backend/internal/errors"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	SkipMigrate     bool
}

// closeDB is swapped in tests to observe cleanup on failed startup
var closeDB = Close

// Opener opens the durable lead database; Initialize is the production implementation.
type Opener func(driver, dsn string, opts *Options) (*gorm.DB, error)

// Initialize opens a Postgres or SQLite connection and creates the leads table.
func Initialize(driver, dsn string, opts *Options) (*gorm.DB, error) {
	// Defaults
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 10 * time.Minute
	}

	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres, "":
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
		// SQLite serializes writers; one connection avoids "database is locked"
		opts.MaxOpenConns = 1
		opts.MaxIdleConns = 1
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDBDriver, driver)
	}

	// Open DB
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName(driver), err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}

	if !opts.SkipMigrate {
		if err := db.AutoMigrate(&models.Lead{}); err != nil {
			_ = closeDB(db)
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	return db, nil
}

// Ping checks that db is reachable
func Ping(db *gorm.DB) error {
	if db == nil {
		return apperrors.ErrStorageNotConfigured
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func driverName(driver string) string {
	if driver == "" {
		return config.DriverPostgres
	}
	return driver
}
