package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	DatabaseURL         string
	ShopifySecret       string
	FirebaseCredentials string
	WellKnownDir        string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "3000"),
		DatabaseURL:         getEnv("DATABASE_URL", "postgres://localhost:5432/sunrisetrade?sslmode=disable"),
		ShopifySecret:       getEnv("SHOPIFY_SECRET", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		WellKnownDir:        getEnv("WELL_KNOWN_DIR", "./.well-known"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
