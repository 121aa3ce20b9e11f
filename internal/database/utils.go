package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/taylorconnect/hub/config"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/retry"
)

// GetConnectionPoolSettings returns connection pool settings based on environment
func GetConnectionPoolSettings() (maxOpen, maxIdle int, maxLifetime time.Duration) {
	environment := os.Getenv("ENVIRONMENT")

	// Scripts and tests only need a few connections
	if environment == "test" || os.Getenv("INTEGRATION_TESTS") == "true" {
		return 5, 2, 2 * time.Minute
	}

	return 10, 10, 20 * time.Minute
}

// GetSystemDSN returns the DSN for the application database
func GetSystemDSN(cfg *config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// MaskedPassword keeps the first and last character for log lines
func MaskedPassword(password string) string {
	if len(password) == 0 {
		return ""
	}
	return fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
}

// Connect opens the database with driverName and pings it under the retry policy
func Connect(ctx context.Context, driverName string, cfg *config.DatabaseConfig, policy retry.Policy, log logger.Logger) (*sql.DB, error) {
	log.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
		cfg.Host, cfg.Port, cfg.User, cfg.SSLMode, MaskedPassword(cfg.Password), cfg.DBName))

	db, err := sql.Open(driverName, GetSystemDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, delay time.Duration, err error) {
			log.WithFields(map[string]interface{}{
				"attempt": attempt,
				"delay":   delay.String(),
				"error":   err.Error(),
			}).Warn("Database ping failed, retrying")
		}
	}

	if err := policy.Do(ctx, db.PingContext); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)
	db.SetConnMaxIdleTime(maxLifetime / 2)

	return db, nil
}
