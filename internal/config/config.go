package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wims/storefront/internal/models"
)

// Session backends.
const (
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

// Config holds all configuration for the storefront CLI and the mock
// gateway. Following 12-factor principles, everything is loaded from
// environment variables; the buyer profile seed optionally comes from a
// YAML file.
type Config struct {
	Gateway  GatewayConfig
	Session  SessionConfig
	Server   ServerConfig
	Profile  string // path to the buyer profile YAML seed, optional
	LogLevel string
}

type GatewayConfig struct {
	URL     string
	Timeout int // seconds; 0 leaves the transport default
}

type SessionConfig struct {
	Backend   string // "file" or "redis"
	Dir       string // file backend: directory holding session keys
	RedisAddr string // redis backend: host:port
}

// ServerConfig configures the bundled mock gateway server.
type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Gateway: GatewayConfig{
			URL:     getEnv("GATEWAY_URL", "http://wims-gateway.azure-api.net"),
			Timeout: getEnvAsInt("GATEWAY_TIMEOUT", 0),
		},
		Session: SessionConfig{
			Backend:   getEnv("SESSION_BACKEND", SessionBackendFile),
			Dir:       getEnv("SESSION_DIR", defaultSessionDir()),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Profile:  getEnv("PROFILE_FILE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Gateway.URL == "" {
		return fmt.Errorf("GATEWAY_URL is required")
	}

	switch c.Session.Backend {
	case SessionBackendFile:
		if c.Session.Dir == "" {
			return fmt.Errorf("SESSION_DIR is required for the file session backend")
		}
	case SessionBackendRedis:
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis session backend")
		}
	default:
		return fmt.Errorf("invalid session backend: %s (must be file or redis)", c.Session.Backend)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// LoadProfile reads the buyer profile seed. With no file configured it
// returns a built-in demo profile.
func (c *Config) LoadProfile() (*models.BuyerProfile, error) {
	if c.Profile == "" {
		return defaultProfile(), nil
	}

	b, err := os.ReadFile(c.Profile)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	var buyer models.BuyerProfile
	if err := yaml.Unmarshal(b, &buyer); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}
	return &buyer, nil
}

func defaultProfile() *models.BuyerProfile {
	return &models.BuyerProfile{
		Name:        "Demo",
		Surname:     "Buyer",
		PhoneNumber: "1234567890",
		Email:       "demo.buyer@example.com",
		Country:     "USA",
		City:        "New York",
		ZipCode:     "10001",
		Address:     "123 Example St",
	}
}

func defaultSessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
