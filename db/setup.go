package db

import (
	"context"
	"fmt"
	"time"

	"github.com/lojinha-dev/lojinha/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver       string
	DSN          string
	Debug        bool
	MaxOpenConns int
	MaxIdleConns int
}

func dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "postgresql", "":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// Open connects to the configured database and sizes its pool.
func Open(cfg Config) (*gorm.DB, error) {
	dial, err := dialector(cfg)

	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	gdb, err := gorm.Open(dial, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return gdb, nil
}

func MigrateDatabase(gdb *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Report{},
	}

	for _, model := range tables {
		if err := gdb.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// Ping checks that the database answers within timeout.
func Ping(ctx context.Context, gdb *gorm.DB, timeout time.Duration) error {
	sqlDB, err := gdb.DB()

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
