package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Upstream UpstreamConfig `json:"upstream"`
	Redis    RedisConfig    `json:"redis"`
	Security SecurityConfig `json:"security"`
	Cache    CacheConfig    `json:"cache"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port          string        `json:"port"`
	Host          string        `json:"host"`
	ServicePrefix string        `json:"service_prefix"`
	ReadTimeout   time.Duration `json:"read_timeout"`
	WriteTimeout  time.Duration `json:"write_timeout"`
	IdleTimeout   time.Duration `json:"idle_timeout"`
	Environment   string        `json:"environment"`
}

// UpstreamConfig represents the incident-query service configuration
type UpstreamConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// RedisConfig represents the cache store configuration
type RedisConfig struct {
	URL string `json:"url"`
}

// SecurityConfig represents token verification configuration
type SecurityConfig struct {
	JWTSecret string        `json:"jwt_secret"`
	TokenTTL  time.Duration `json:"token_ttl"`
}

// CacheConfig represents caching behavior configuration
type CacheConfig struct {
	TTL time.Duration `json:"ttl"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"` // json, text
}

// Load loads configuration from environment variables and defaults
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8000"),
			Host:          getEnv("SERVER_HOST", "0.0.0.0"),
			ServicePrefix: getEnv("SERVICE_PREFIX", "/report-generation"),
			ReadTimeout:   getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:  getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:   getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			Environment:   getEnv("ENVIRONMENT", "development"),
		},
		Upstream: UpstreamConfig{
			BaseURL: getEnv("INCIDENT_QUERY_URL", "http://localhost:8006/incident-query"),
			Timeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Security: SecurityConfig{
			JWTSecret: getEnv("JWT_SECRET_KEY", "secret_key"),
			TokenTTL:  getEnvDuration("SERVICE_TOKEN_TTL", time.Hour),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvInt("CACHE_EXPIRATION_SECONDS", 300)) * time.Second,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("incident query URL is required")
	}

	// The cache store is required infrastructure: refusing to start beats
	// serving with caching silently disabled.
	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL environment variable is not set")
	}

	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Security.JWTSecret == "secret_key" && c.Server.Environment == "production" {
		return fmt.Errorf("JWT secret must be set in production")
	}

	return nil
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions for environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
