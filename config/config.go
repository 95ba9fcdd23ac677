package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string
	// BaseURL is the externally visible address, used to build short links
	BaseURL string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
}

// LoadConfig creates a new Config instance with values from environment
// variables, falling back to Docker secrets and then to development defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "server_port", "8080"),
		ServerHost: getValue("SERVER_HOST", "server_host", "0.0.0.0"),
		BaseURL:    getValue("BASE_URL", "base_url", "http://localhost:8080"),

		DBHost:     getValue("DB_HOST", "db_host", "localhost"),
		DBPort:     getValue("DB_PORT", "db_port", "5432"),
		DBUser:     getValue("DB_USER", "db_user", "postgres"),
		DBPassword: getValue("DB_PASSWORD", "db_password", "postgres"),
		DBName:     getValue("DB_NAME", "db_name", "platewise"),
		DBSSLMode:  getValue("DB_SSL_MODE", "db_ssl_mode", "disable"),

		RedisHost:     getValue("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     getValue("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: getValue("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      getValue("REDIS_URL", "redis_url", ""),

		JWTSecret: getValue("JWT_SECRET", "jwt_secret", "dev-secret"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", v, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// getValue resolves a configuration value: environment variable first,
// Docker secret second, default last.
func getValue(envVar, secretName, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
