package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Zoho       ZohoConfig
	Attendance AttendanceConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// ZohoConfig holds the upstream Zoho People credentials and endpoints.
// The three secrets must come from the environment; they are never
// defaulted or baked into the binary.
type ZohoConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenURL     string
	APIBaseURL   string
	DepartmentID string
	Timeout      time.Duration
}

type AttendanceConfig struct {
	WindowDays      int
	SnapshotTTL     time.Duration
	DirectoryTTL    time.Duration
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	zohoTimeout, err := time.ParseDuration(getEnv("ZOHO_HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ZOHO_HTTP_TIMEOUT: %w", err)
	}

	config.Zoho = ZohoConfig{
		ClientID:     getEnv("ZOHO_CLIENT_ID", ""),
		ClientSecret: getEnv("ZOHO_CLIENT_SECRET", ""),
		RefreshToken: getEnv("ZOHO_REFRESH_TOKEN", ""),
		TokenURL:     getEnv("ZOHO_TOKEN_URL", "https://accounts.zoho.com/oauth/v2/token"),
		APIBaseURL:   getEnv("ZOHO_API_BASE_URL", "https://people.zoho.com/people/api"),
		DepartmentID: getEnv("ZOHO_DEPARTMENT_ID", ""),
		Timeout:      zohoTimeout,
	}

	windowDays, err := strconv.Atoi(getEnv("ATTENDANCE_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_WINDOW_DAYS: %w", err)
	}

	snapshotTTL, err := time.ParseDuration(getEnv("ATTENDANCE_SNAPSHOT_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SNAPSHOT_TTL: %w", err)
	}

	directoryTTL, err := time.ParseDuration(getEnv("EMPLOYEE_DIRECTORY_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMPLOYEE_DIRECTORY_TTL: %w", err)
	}

	refreshInterval, err := time.ParseDuration(getEnv("ATTENDANCE_REFRESH_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_REFRESH_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		WindowDays:      windowDays,
		SnapshotTTL:     snapshotTTL,
		DirectoryTTL:    directoryTTL,
		RefreshInterval: refreshInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Zoho.ClientID == "" {
		return fmt.Errorf("ZOHO_CLIENT_ID is required")
	}
	if c.Zoho.ClientSecret == "" {
		return fmt.Errorf("ZOHO_CLIENT_SECRET is required")
	}
	if c.Zoho.RefreshToken == "" {
		return fmt.Errorf("ZOHO_REFRESH_TOKEN is required")
	}
	if c.Zoho.DepartmentID == "" {
		return fmt.Errorf("ZOHO_DEPARTMENT_ID is required")
	}
	if c.Attendance.WindowDays <= 0 {
		return fmt.Errorf("ATTENDANCE_WINDOW_DAYS must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
