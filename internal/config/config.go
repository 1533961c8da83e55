package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
)

// Config is assembled once at startup from environment variables.
type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	// IdempTTLSecs is how long a finished response stays replayable.
	IdempTTLSecs int

	// InterestRate feeds the fixed-rate pricing policy.
	InterestRate float64
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return fallback
}

func Load() *Config {
	return &Config{
		AppPort: envStr("APP_PORT", "8080"),

		MySQLHost: envStr("MYSQL_HOST", "mysql"),
		MySQLPort: envStr("MYSQL_PORT", "3306"),
		MySQLDB:   envStr("MYSQL_DB", "origination"),
		MySQLUser: envStr("MYSQL_USER", "origination"),
		MySQLPass: envStr("MYSQL_PASS", "origination"),

		RedisAddr: envStr("REDIS_ADDR", "redis:6379"),
		RedisDB:   envInt("REDIS_DB", 0),

		IdempTTLSecs: envInt("IDEMPOTENCY_TTL_SECONDS", 300),
		InterestRate: envFloat("LOAN_INTEREST_RATE", 0.05),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	return nil
}

func (c *Config) MySQLDSN() string {
	// parseTime is required for the DATETIME columns to scan into time.Time
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, net.JoinHostPort(c.MySQLHost, c.MySQLPort), c.MySQLDB)
}
