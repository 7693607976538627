package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shaadibazaarhub/marketplace-api/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver string
	// DSN is a postgres connection string or a sqlite file/URI.
	DSN      string
	LogLevel logger.LogLevel
}

// Open connects to the configured store. Duplicate-key failures are
// translated to gorm.ErrDuplicatedKey for every driver.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(opts.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if opts.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite has a single writer; one connection also keeps in-memory
		// databases alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

// MemoryDSN names a fresh private in-memory sqlite database.
func MemoryDSN() string {
	return "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Account{}, &models.Service{}, &models.Booking{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// "my bookings" for providers walks bookings by service, newest first
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_service_recent
		ON bookings (service_id, id DESC)
	`).Error; err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
