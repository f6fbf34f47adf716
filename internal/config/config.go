package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type LedgerStore string

const (
	LedgerStoreMemory   LedgerStore = "memory"
	LedgerStorePostgres LedgerStore = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Kushtati Immo"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"kushtati"`
	}

	Ledger struct {
		Store    LedgerStore `envconfig:"LEDGER_STORE" default:"memory"`
		SeedFile string      `envconfig:"LEDGER_SEED_FILE"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Payment struct {
		ProcessingDelay time.Duration `envconfig:"PAYMENT_PROCESSING_DELAY" default:"2s"`
	}

	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	CORS struct {
		Origins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	}

	Gemini struct {
		APIKey string `envconfig:"GEMINI_API_KEY"`
		Model  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	}

	Advisor struct {
		// ulule/limiter rate format, e.g. "20-M" for twenty requests a minute.
		RateLimit string `envconfig:"ADVISOR_RATE_LIMIT" default:"20-M"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Validate() error {
	switch c.Ledger.Store {
	case LedgerStoreMemory, LedgerStorePostgres:
	default:
		return fmt.Errorf("unknown ledger store %q", c.Ledger.Store)
	}

	if c.Payment.ProcessingDelay < 0 {
		return fmt.Errorf("payment processing delay must not be negative")
	}

	if strings.TrimSpace(c.Advisor.RateLimit) == "" {
		return fmt.Errorf("advisor rate limit is required")
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
