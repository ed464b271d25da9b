package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	DBPath string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Registration payment gate
	PaymentRequired bool
	PaymentAPIURL   string
	PaymentAPIKey   string

	// Road sign catalog used by the admin import endpoint
	SignCatalogURL string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg := &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBPath:          getenvDefault("DB_PATH", "flashneiga.db"),
		JWTSecret:       mustGetenv("JWT_SECRET"),
		TokenTTL:        mustGetDuration("TOKEN_TTL"),
		PaymentRequired: getenvBool("PAYMENT_REQUIRED", false),
		SignCatalogURL:  getenvDefault("SIGN_CATALOG_URL", ""),
	}
	if cfg.PaymentRequired {
		cfg.PaymentAPIURL = mustGetenv("PAYMENT_API_URL")
		cfg.PaymentAPIKey = mustGetenv("PAYMENT_API_KEY")
	}
	return cfg
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid boolean: %v", k, v, err)
	}
	return b
}
