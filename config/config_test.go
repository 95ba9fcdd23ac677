package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("DB_HOST", "dbhost")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_USER", "platewise")
	os.Setenv("DB_PASSWORD", "secret")
	os.Setenv("DB_NAME", "platewise")
	os.Setenv("DB_SSL_MODE", "require")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("REDIS_URL", "redis://localhost:6379")
	defer func() {
		for _, v := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "JWT_SECRET", "REDIS_URL"} {
			os.Unsetenv(v)
		}
	}()

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "dbhost", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "platewise", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "platewise", cfg.DBName)
	assert.Equal(t, "require", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)

	assert.Equal(t, "host=dbhost port=5433 user=platewise password=secret dbname=platewise sslmode=require", cfg.DSN())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	for _, v := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE", "JWT_SECRET", "REDIS_URL", "SERVER_PORT"} {
		os.Unsetenv(v)
	}

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "platewise", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestLoadConfigInvalidRedisDB(t *testing.T) {
	os.Setenv("REDIS_DB", "not-a-number")
	defer os.Unsetenv("REDIS_DB")

	_, err := LoadConfig()
	assert.Error(t, err)
}
