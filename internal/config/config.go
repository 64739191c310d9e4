// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Source kinds.
const (
	SourceFile       = "file"
	SourcePostgres   = "postgres"
	SourceClickHouse = "clickhouse"
	SourceMemory     = "memory"
)

type Config struct {
	App      AppConfig
	Analysis AnalysisConfig
	Sources  SourcesConfig
	Server   ServerConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"sentiment-lab" validate:"required"`
	Env      string `envconfig:"APP_ENV" default:"development" validate:"oneof=development production test"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

type AnalysisConfig struct {
	Clusters      int     `envconfig:"ANALYSIS_CLUSTERS" default:"3" validate:"min=1,max=50"`
	Seed          int64   `envconfig:"ANALYSIS_SEED" default:"42"`
	MaxIterations int     `envconfig:"ANALYSIS_MAX_ITERATIONS" default:"300" validate:"min=1"`
	MaxLeverage   float64 `envconfig:"ANALYSIS_MAX_LEVERAGE" default:"100" validate:"gt=0"`
	AliasesFile   string  `envconfig:"ANALYSIS_ALIASES_FILE"` // optional YAML alias overrides
}

// SourcesConfig names where the two raw tables come from. With Kind "file"
// the paths are CSV/TSV/XLSX files; otherwise the table names are read from
// the configured database.
type SourcesConfig struct {
	Kind           string `envconfig:"SOURCE_KIND" default:"file" validate:"oneof=file postgres clickhouse memory"`
	SentimentPath  string `envconfig:"SOURCE_SENTIMENT_PATH" validate:"required_if=Kind file"`
	TradesPath     string `envconfig:"SOURCE_TRADES_PATH" validate:"required_if=Kind file"`
	Sheet          string `envconfig:"SOURCE_XLSX_SHEET"`
	SentimentTable string `envconfig:"SOURCE_SENTIMENT_TABLE" default:"fear_greed_index"`
	TradesTable    string `envconfig:"SOURCE_TRADES_TABLE" default:"historical_data"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN" validate:"required_if=Kind postgres"`
	ClickHouseDSN  string `envconfig:"CLICKHOUSE_DSN" validate:"required_if=Kind clickhouse"`
}

type ServerConfig struct {
	Addr            string        `envconfig:"SERVER_ADDR" default:":8080" validate:"required"`
	RefreshInterval time.Duration `envconfig:"SERVER_REFRESH_INTERVAL" default:"5m" validate:"min=1s"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
}

// Load reads configuration from environment variables and validates it.
// It first tries to load the given .env files (".env" when none), ignoring
// files that do not exist.
func Load(envFiles ...string) (*Config, error) {
	cfg, err := Read(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply overrides
// (command-line flags) before calling Validate.
func Read(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
