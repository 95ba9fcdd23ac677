package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks configuration invariants. Development and test
// environments may run on defaults; production must carry real secrets.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"ServerPort", "must not be empty"}.Error())
	}
	if cfg.DBHost == "" {
		errs = append(errs, ValidationError{"DBHost", "must not be empty"}.Error())
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{"DBName", "must not be empty"}.Error())
	}

	if IsProduction() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == "dev-secret" {
			errs = append(errs, ValidationError{"JWTSecret", "a real jwt_secret is required in production"}.Error())
		}
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			errs = append(errs, ValidationError{"DBPassword", "a real db_password is required in production"}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
