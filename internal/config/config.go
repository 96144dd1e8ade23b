package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings shared by the server and the CLIs.
type Config struct {
	Port              string        `envconfig:"PORT"                default:":8081"`
	DatabasePath      string        `envconfig:"DB_PATH"             default:"inventory.db"`
	LowStockThreshold int           `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
	LogLevel          string        `envconfig:"LOG_LEVEL"           default:"info"`
	BcryptCost        int           `envconfig:"BCRYPT_COST"         default:"12"`
	ATMAccounts       string        `envconfig:"ATM_ACCOUNTS"        default:"1001:1234:500"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT"    default:"30s"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the .env file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment: %w", err)
	}
	if cfg.LowStockThreshold <= 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must be positive, got %d", cfg.LowStockThreshold)
	}
	return &cfg, nil
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
