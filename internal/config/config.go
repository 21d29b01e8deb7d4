package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

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
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds tuning knobs for the attendance subsystem.
type AttendanceConfig struct {
	// CorrectionWindowHours is the fallback submission window when a company
	// has no explicit setting of its own.
	CorrectionWindowHours int
	// StaleOTCutoffHours is how long an overtime session may stay active
	// before the cleanup job force-closes it.
	StaleOTCutoffHours int
	// RecomputeIntervalMinutes is how often the status recompute job runs.
	RecomputeIntervalMinutes int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "unity-hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	correctionWindow, err := strconv.Atoi(getEnv("CORRECTION_WINDOW_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid CORRECTION_WINDOW_HOURS: %w", err)
	}

	staleOTCutoff, err := strconv.Atoi(getEnv("STALE_OT_CUTOFF_HOURS", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_OT_CUTOFF_HOURS: %w", err)
	}

	recomputeInterval, err := strconv.Atoi(getEnv("RECOMPUTE_INTERVAL_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMPUTE_INTERVAL_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		CorrectionWindowHours:    correctionWindow,
		StaleOTCutoffHours:       staleOTCutoff,
		RecomputeIntervalMinutes: recomputeInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.CorrectionWindowHours <= 0 {
		return fmt.Errorf("CORRECTION_WINDOW_HOURS must be positive")
	}
	if c.Attendance.StaleOTCutoffHours <= 0 {
		return fmt.Errorf("STALE_OT_CUTOFF_HOURS must be positive")
	}
	if c.Attendance.RecomputeIntervalMinutes <= 0 {
		return fmt.Errorf("RECOMPUTE_INTERVAL_MINUTES must be positive")
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
