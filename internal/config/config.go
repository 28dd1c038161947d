package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Server
	Port        string
	FrontendURL string

	// Admin backend (external collaborator)
	AdminAPIBaseURL string
	AdminProxyURL   string

	// Redis (primary cache store)
	RedisURL string

	// Postgres (durable cache store, optional)
	DatabaseURL string
	StoreDriver string // "redis", "postgres" or "memory"

	// Wallet limits
	MinDepositAmount    float64
	MaxDepositAmount    float64
	MinWithdrawAmount   float64
	MaxWithdrawAmount   float64
	DefaultCurrency     string
	DemoAccountID       string
	AllowDemoGameLaunch bool

	// Security
	JWTSecret       string
	SessionTTLHours int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Admin backend
		AdminAPIBaseURL: getEnv("ADMIN_API_BASE_URL", "http://localhost:3000"),
		AdminProxyURL:   getEnv("ADMIN_PROXY_URL", "http://localhost:3000"),

		// Stores
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		StoreDriver: getEnv("STORE_DRIVER", "redis"),

		// Wallet limits
		MinDepositAmount:    getEnvFloat("MIN_DEPOSIT_AMOUNT", 10),
		MaxDepositAmount:    getEnvFloat("MAX_DEPOSIT_AMOUNT", 100000),
		MinWithdrawAmount:   getEnvFloat("MIN_WITHDRAW_AMOUNT", 20),
		MaxWithdrawAmount:   getEnvFloat("MAX_WITHDRAW_AMOUNT", 50000),
		DefaultCurrency:     getEnv("DEFAULT_CURRENCY", "USD"),
		DemoAccountID:       getEnv("DEMO_ACCOUNT_ID", "ACC-DEMO-001"),
		AllowDemoGameLaunch: getEnv("ALLOW_DEMO_GAME_LAUNCH", "false") == "true",

		// Security
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
