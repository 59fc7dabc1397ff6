package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cmlabs-hris/checkclock-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Storage    StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the attendance business constants.
type AttendanceConfig struct {
	// DefaultClockInMinutes is the fallback scheduled clock-in
	// (minutes since midnight) for employees with no resolvable shift.
	DefaultClockInMinutes int

	// AutoClockOutMinutes is the daily cutoff (minutes since midnight) at
	// which open clock-ins are force-closed.
	AutoClockOutMinutes int

	// LeaveQuotaDays is the annual-leave quota per employee.
	LeaveQuotaDays int
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; env vars win anyway.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "cmlabs-checkclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	defaultClockIn, ok := validator.IsValidTimeOfDay(getEnv("DEFAULT_CLOCK_IN", "08:00"))
	if !ok {
		return nil, fmt.Errorf("invalid DEFAULT_CLOCK_IN: expected HH:MM")
	}

	autoClockOut, ok := validator.IsValidTimeOfDay(getEnv("AUTO_CLOCK_OUT", "21:30"))
	if !ok {
		return nil, fmt.Errorf("invalid AUTO_CLOCK_OUT: expected HH:MM")
	}

	quotaDays, err := strconv.Atoi(getEnv("LEAVE_QUOTA_DAYS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_QUOTA_DAYS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		DefaultClockInMinutes: defaultClockIn,
		AutoClockOutMinutes:   autoClockOut,
		LeaveQuotaDays:        quotaDays,
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
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
	if c.Attendance.LeaveQuotaDays < 0 {
		return fmt.Errorf("LEAVE_QUOTA_DAYS must not be negative")
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
