package app

import (
	"os"
	"strconv"
	"time"

	"github.com/amfajardoo/investment-manager/pkg/jwtx"
)

type Config struct {
	Issuer       string // Issuer claim for session tokens (default: investment-manager)
	DatabaseFile string // Path to SQLite database file (default: ./finance.db)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	SessionTTL           time.Duration // Session token lifetime (default: 24h)
	HousekeepingInterval time.Duration // Maturity sweep interval (default: 1h)

	AlertWindowDays int // Days before maturity an alert fires (default: 30)
	LockupYears     int // FPV contribution lock-up (default: 10)

	UVTValue        float64 // Peso value of one UVT
	MonthlyLimitUVT float64 // Deductible cap in UVT per month
	IncomeFraction  float64 // Deductible cap as a fraction of monthly income
	MarginalRate    float64 // Marginal income tax rate for savings estimates
	InflationRate   float64 // Annual inflation in percent for real returns
}

func LoadConfig() Config {
	return Config{
		Issuer:       getEnvOrDefault("FINANCE_ISSUER", "investment-manager"),
		DatabaseFile: getEnvOrDefault("FINANCE_DATABASE_FILE", "finance.db"),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		SessionTTL:           getEnvDurationOrDefault("FINANCE_SESSION_TTL", jwtx.DefaultSessionTTL),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		AlertWindowDays: getEnvIntOrDefault("FINANCE_ALERT_WINDOW_DAYS", 30),
		LockupYears:     getEnvIntOrDefault("FINANCE_LOCKUP_YEARS", 10),

		UVTValue:        getEnvFloatOrDefault("FINANCE_UVT_VALUE", 47065),
		MonthlyLimitUVT: getEnvFloatOrDefault("FINANCE_MONTHLY_LIMIT_UVT", 100),
		IncomeFraction:  getEnvFloatOrDefault("FINANCE_INCOME_FRACTION", 0.3),
		MarginalRate:    getEnvFloatOrDefault("FINANCE_MARGINAL_RATE", 0.35),
		InflationRate:   getEnvFloatOrDefault("FINANCE_INFLATION_RATE", 9.28),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
