package main

import (
	"errors"

	"what-do-you-meme/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		logrus.Warnf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	log := cfg.NewLogger()

	if cfg.DBDriver != config.DriverPostgres {
		log.Fatalf("migrations target postgres, DB_DRIVER is %s", cfg.DBDriver)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://db/migrations", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("migration setup failed: %v", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("database migration failed: %v", err)
	}
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatalf("read migration version: %v", err)
	}
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("database migrations applied")
}
