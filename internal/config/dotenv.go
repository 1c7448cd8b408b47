package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvProduction = "production"
)

type Config struct {
	AppEnv                   string `env:"APP_ENV" envDefault:"development"`
	DBDriver                 string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL              string `env:"DATABASE_URL"`
	SQLitePath               string `env:"SQLITE_PATH" envDefault:"what_do_you_meme.sqlite"`
	DBMaxOpenConns           int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns           int    `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetimeSeconds int    `env:"DB_CONN_MAX_LIFETIME_SECONDS" envDefault:"300"`
	DBConnMaxIdleTimeSeconds int    `env:"DB_CONN_MAX_IDLE_SECONDS" envDefault:"60"`
	DBTxTimeoutSeconds       int    `env:"DB_TX_TIMEOUT_SECONDS" envDefault:"5"`
	CorrectPoints            int    `env:"CORRECT_POINTS" envDefault:"5"`
	RoundsPerGame            int    `env:"ROUNDS_PER_GAME" envDefault:"3"`
	ValidCaptionsPerRound    int    `env:"VALID_CAPTIONS_PER_ROUND" envDefault:"2"`
	DistractorsPerRound      int    `env:"DISTRACTORS_PER_ROUND" envDefault:"5"`
	LogLevel                 string `env:"LOG_LEVEL" envDefault:"info"`
	RedisAddr                string `env:"REDIS_ADDR"`
	RedisPassword            string `env:"REDIS_PASSWORD"`
	RedisDB                  int    `env:"REDIS_DB" envDefault:"0"`
	NATSURL                  string `env:"NATS_URL"`
	NATSToken                string `env:"NATS_TOKEN"`
	NATSSubject              string `env:"NATS_SUBJECT" envDefault:"memegame.events"`
}

func Default() Config {
	return Config{
		AppEnv:                   "development",
		DBDriver:                 DriverPostgres,
		SQLitePath:               "what_do_you_meme.sqlite",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		DBTxTimeoutSeconds:       5,
		CorrectPoints:            5,
		RoundsPerGame:            3,
		ValidCaptionsPerRound:    2,
		DistractorsPerRound:      5,
		LogLevel:                 "info",
		NATSSubject:              "memegame.events",
	}
}

// Load reads the configuration from the environment. Unparseable or
// non-positive values fall back to Default.
func Load() Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Default()
	}
	def := Default()
	positive := func(value *int, fallback int) {
		if *value <= 0 {
			*value = fallback
		}
	}
	positive(&cfg.DBMaxOpenConns, def.DBMaxOpenConns)
	positive(&cfg.DBMaxIdleConns, def.DBMaxIdleConns)
	positive(&cfg.DBConnMaxLifetimeSeconds, def.DBConnMaxLifetimeSeconds)
	positive(&cfg.DBConnMaxIdleTimeSeconds, def.DBConnMaxIdleTimeSeconds)
	positive(&cfg.DBTxTimeoutSeconds, def.DBTxTimeoutSeconds)
	positive(&cfg.CorrectPoints, def.CorrectPoints)
	positive(&cfg.RoundsPerGame, def.RoundsPerGame)
	positive(&cfg.ValidCaptionsPerRound, def.ValidCaptionsPerRound)
	if cfg.DistractorsPerRound < 0 {
		cfg.DistractorsPerRound = def.DistractorsPerRound
	}
	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		cfg.DBDriver = def.DBDriver
	}
	return cfg
}

func (c Config) TxTimeout() time.Duration {
	return time.Duration(c.DBTxTimeoutSeconds) * time.Second
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}
