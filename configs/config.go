package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port          string
	Environment   string
	APIKey        string
	AdminUsername string
	AdminPassword string
	// AdminPasswordHash is a bcrypt hash; when set it is used instead of AdminPassword.
	AdminPasswordHash string

	// ModelPath points at the exported linear regression coefficients (JSON).
	ModelPath string
	// PredictorURL, when set, takes precedence over ModelPath.
	PredictorURL    string
	PredictorAPIKey string
	LocationsFile   string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Environment:       getEnv("ENVIRONMENT", "development"),
		APIKey:            getEnv("API_KEY", ""),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		ModelPath:         getEnv("MODEL_PATH", "models/bangalore_home_prices_model.json"),
		PredictorURL:      getEnv("PREDICTOR_URL", ""),
		PredictorAPIKey:   getEnv("PREDICTOR_API_KEY", ""),
		LocationsFile:     getEnv("LOCATIONS_FILE", ""),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 20),
	}
}

// getEnv gets an environment variable with a default value
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
