package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings. Loaded once at startup and injected
// into the components that need it.
type Config struct {
	Port        string
	JWTSecret   string
	DatabaseURL string // empty selects the in-memory store
	Version     string

	AllowedOrigins []string

	// External agricultural statistics service
	IBGEBaseURL       string
	IBGELocalitiesURL string
	DefaultYieldKgHa  float64

	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", "your-secret-key"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		Version:           getEnv("APP_VERSION", "1.0.0"),
		IBGEBaseURL:       getEnv("IBGE_BASE_URL", "https://apisidra.ibge.gov.br"),
		IBGELocalitiesURL: getEnv("IBGE_LOCALITIES_URL", "https://servicodados.ibge.gov.br"),
		DefaultYieldKgHa:  getEnvFloat("DEFAULT_YIELD_KG_HA", 3000),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	cfg.AllowedOrigins = []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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
