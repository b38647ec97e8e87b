package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	Environment          string
	AllowedOrigin        string
	RunMigrations        bool
	MetricsEnabled       bool
	DailyScanInterval    time.Duration
	ClockoutPollInterval time.Duration
	ClockoutTolerance    time.Duration
	ReportDir            string
}

func Load() Config {
	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		Environment:          getEnv("APP_ENV", "development"),
		AllowedOrigin:        getEnv("ALLOWED_ORIGIN", "*"),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		DailyScanInterval:    getEnvDuration("DAILY_SCAN_INTERVAL", 24*time.Hour),
		ClockoutPollInterval: getEnvDuration("CLOCKOUT_POLL_INTERVAL", time.Minute),
		ClockoutTolerance:    getEnvDuration("CLOCKOUT_TOLERANCE", time.Minute),
		ReportDir:            getEnv("REPORT_DIR", "storage/reports"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.ClockoutPollInterval <= 0 {
		return fmt.Errorf("CLOCKOUT_POLL_INTERVAL must be positive")
	}
	if c.ClockoutTolerance < time.Second {
		return fmt.Errorf("CLOCKOUT_TOLERANCE must be at least one second")
	}
	return nil
}
