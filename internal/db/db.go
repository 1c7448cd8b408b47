package db

import (
	"errors"
	"strings"
	"time"

	"what-do-you-meme/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the engine selected by cfg.DBDriver.
func Open(cfg config.Config, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLITE_PATH is not set")
		}
		dialector = sqlite.Open(sqliteDSN(cfg.SQLitePath))
	default:
		return nil, errors.New("unsupported DB_DRIVER " + cfg.DBDriver)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}
	if err := configurePool(conn, cfg); err != nil {
		return nil, err
	}
	return conn, nil
}

func configurePool(conn *gorm.DB, cfg config.Config) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	if cfg.DBDriver == config.DriverSQLite {
		// one writer; shared-cache in-memory databases also need it
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		return nil
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	return nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1"
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&User{},
		&Meme{},
		&Caption{},
		&Game{},
		&Round{},
		&Event{},
	); err != nil {
		return err
	}
	logrus.Debug("database migration complete")
	return nil
}

// Reset drops every table and recreates the schema. Bootstrap only.
func Reset(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.Migrator().DropTable(
		&Event{},
		&Round{},
		&Game{},
		&Caption{},
		&Meme{},
		&User{},
	); err != nil {
		return err
	}
	return Migrate(conn)
}
