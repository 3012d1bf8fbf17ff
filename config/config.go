package config

import (
	"fmt"
	"os"
)

type AppConfig struct {
	Environment string // development, production
	Port        string
}

type DatabaseConfig struct {
	Driver   string // postgres, sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite only; "memory" for an in-memory database
}

// Load reads configuration from environment variables with local defaults.
func Load() (*AppConfig, *DatabaseConfig) {
	app := &AppConfig{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
	}

	db := &DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", "postgres"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		Name:     getEnv("DB_NAME", "aier_cms"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
		Path:     getEnv("DB_PATH", "aier_cms.db"),
	}

	return app, db
}

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
