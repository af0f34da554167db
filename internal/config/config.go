package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type Redis struct {
	Host     string
	Port     string
	DB       int
	CacheTTL time.Duration
}

func (r Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type Config struct {
	Database Database
	Redis    Redis

	HTTPAddr string
	LogLevel string

	ConcessionRate   decimal.Decimal
	MaxInputAttempts int
	CallTimeout      time.Duration
	CallRetries      int
	SessionIdleTTL   time.Duration
	// PaymentMaxAmount of zero authorizes any amount.
	PaymentMaxAmount decimal.Decimal
}

// Load reads .env when present and then the process environment. Missing
// variables fall back to defaults; malformed ones are reported together.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env not found, using process environment")
	}

	p := &parser{}

	cfg := Config{
		Database: Database{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			User:     env("DB_USER", "postgres"),
			Password: env("DB_PASSWORD", ""),
			DBName:   env("DB_NAME", "royale_boxoffice"),
		},
		Redis: Redis{
			Host:     env("REDIS_HOST", "localhost"),
			Port:     env("REDIS_PORT", "6379"),
			DB:       p.intVar("REDIS_DB", 0),
			CacheTTL: p.durationVar("CACHE_TTL", 30*time.Second),
		},
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		LogLevel:         env("LOG_LEVEL", "info"),
		ConcessionRate:   p.decimalVar("CONCESSION_RATE", decimal.RequireFromString("0.5")),
		MaxInputAttempts: p.intVar("MAX_INPUT_ATTEMPTS", 3),
		CallTimeout:      p.durationVar("CALL_TIMEOUT", 5*time.Second),
		CallRetries:      p.intVar("CALL_RETRIES", 3),
		SessionIdleTTL:   p.durationVar("SESSION_IDLE_TTL", 30*time.Minute),
		PaymentMaxAmount: p.decimalVar("PAYMENT_MAX_AMOUNT", decimal.Zero),
	}

	if cfg.ConcessionRate.IsNegative() || cfg.ConcessionRate.GreaterThan(decimal.NewFromInt(1)) {
		p.errs = append(p.errs, fmt.Errorf("CONCESSION_RATE must be between 0 and 1, got %s", cfg.ConcessionRate))
	}

	if cfg.MaxInputAttempts < 1 {
		p.errs = append(p.errs, fmt.Errorf("MAX_INPUT_ATTEMPTS must be positive, got %d", cfg.MaxInputAttempts))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

type parser struct {
	errs []error
}

func (p *parser) intVar(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid int for %s: %q", key, v))
		return def
	}

	return n
}

func (p *parser) durationVar(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid duration for %s: %q", key, v))
		return def
	}

	return d
}

func (p *parser) decimalVar(key string, def decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("invalid decimal for %s: %q", key, v))
		return def
	}

	return d
}
