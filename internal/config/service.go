package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// ServiceConfig holds the runtime configuration of the assessment service.
type ServiceConfig struct {
	DataDir  string // Directory for the leads database (always absolute)
	Port     int
	LogLevel string
	DevMode  bool
}

// LoadService reads service configuration from environment variables,
// loading a .env file first if one exists.
func LoadService() (*ServiceConfig, error) {
	_ = godotenv.Load()

	dataDir := getEnv("FINNAV_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &ServiceConfig{
		DataDir:  absDataDir,
		Port:     getEnvAsInt("FINNAV_PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvAsBool("DEV_MODE", false),
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	return cfg, nil
}

// DatabasePath returns the location of the leads database file.
func (c *ServiceConfig) DatabasePath() string {
	return filepath.Join(c.DataDir, "leads.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
