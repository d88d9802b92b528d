package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverREST     = "rest"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	App      AppConfig
	Store    StoreConfig
	HRISAPI  HRISAPIConfig
	Anomaly  AnomalyConfig
	Submit   SubmitConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig is optional; an empty Addr selects the in-memory stores.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// StoreConfig selects where attendance, employee, shift and location data lives.
type StoreConfig struct {
	Driver string
}

// HRISAPIConfig points at the upstream HRIS REST API used by the rest store driver.
type HRISAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AnomalyConfig struct {
	SessionTTL               time.Duration
	KeepBaselineOnSuspicious bool
}

type SubmitConfig struct {
	Cooldown time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance_reconciliation"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Store = StoreConfig{
		Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
	}

	apiTimeout, err := time.ParseDuration(getEnv("HRIS_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRIS_API_TIMEOUT: %w", err)
	}

	config.HRISAPI = HRISAPIConfig{
		BaseURL: getEnv("HRIS_API_BASE_URL", ""),
		Timeout: apiTimeout,
	}

	sessionTTL, err := time.ParseDuration(getEnv("ANOMALY_SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANOMALY_SESSION_TTL: %w", err)
	}

	keepBaseline, err := strconv.ParseBool(getEnv("ANOMALY_KEEP_BASELINE_ON_SUSPICIOUS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANOMALY_KEEP_BASELINE_ON_SUSPICIOUS: %w", err)
	}

	config.Anomaly = AnomalyConfig{
		SessionTTL:               sessionTTL,
		KeepBaselineOnSuspicious: keepBaseline,
	}

	cooldown, err := time.ParseDuration(getEnv("SUBMIT_COOLDOWN", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_COOLDOWN: %w", err)
	}
	config.Submit = SubmitConfig{Cooldown: cooldown}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverREST:
		if c.HRISAPI.BaseURL == "" {
			return fmt.Errorf("HRIS_API_BASE_URL is required when STORE_DRIVER=rest")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.Store.Driver)
	}

	if c.Submit.Cooldown < 0 {
		return fmt.Errorf("SUBMIT_COOLDOWN must not be negative")
	}
	if c.Anomaly.SessionTTL <= 0 {
		return fmt.Errorf("ANOMALY_SESSION_TTL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
