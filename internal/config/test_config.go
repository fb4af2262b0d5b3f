package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment
// variables for integration tests. If the .env file doesn't exist or the
// TEST_DB_* variables are not set, returns a Config with empty values which
// allows tests to use fallback DSN values.
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.JWT.TokenExpiry = 24 * time.Hour

	if jwtSecret := os.Getenv("TEST_JWT_SECRET"); jwtSecret != "" {
		cfg.JWT.Secret = jwtSecret
	}

	if tokenExpiryStr := os.Getenv("TEST_JWT_TOKEN_EXPIRY"); tokenExpiryStr != "" {
		tokenExpiry, err := time.ParseDuration(tokenExpiryStr)
		if err != nil {
			return nil, fmt.Errorf("invalid TEST_JWT_TOKEN_EXPIRY: %w", err)
		}
		cfg.JWT.TokenExpiry = tokenExpiry
	}

	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		// Return early to allow fallback DSN in tests
		return cfg, nil
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		return cfg, nil
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("TEST_DB_USER")
	if dbUser == "" {
		return cfg, nil
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	if dbPassword == "" {
		return cfg, nil
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("TEST_DB_NAME")
	if dbName == "" {
		return cfg, nil
	}
	cfg.Database.DBName = dbName

	return cfg, nil
}
