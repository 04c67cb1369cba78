package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Third-party providers. Empty keys mean "not configured": the
	// corresponding client degrades to fallback data instead of failing.
	StockAPIKey     string
	CoinGeckoAPIKey string
	MarketauxAPIKey string

	// Quote fetching
	QuoteCacheTTL       time.Duration
	StockFetchInterval  time.Duration
	CryptoFetchInterval time.Duration
	HTTPClientTimeout   time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "cryptoadvisor"),
		DBPassword: getEnv("DB_PASSWORD", "cryptoadvisor"),
		DBName:     getEnv("DB_NAME", "cryptoadvisor"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Providers
		StockAPIKey:     os.Getenv("STOCK_API_KEY"),
		CoinGeckoAPIKey: os.Getenv("COINGECKO_API_KEY"),
		MarketauxAPIKey: os.Getenv("MARKETAUX_API_KEY"),

		// Quote fetching
		QuoteCacheTTL:       getDurationEnv("QUOTE_CACHE_TTL", 5*time.Minute),
		StockFetchInterval:  getDurationEnv("STOCK_FETCH_INTERVAL", 100*time.Millisecond),
		CryptoFetchInterval: getDurationEnv("CRYPTO_FETCH_INTERVAL", 200*time.Millisecond),
		HTTPClientTimeout:   getDurationEnv("HTTP_CLIENT_TIMEOUT", 10*time.Second),
	}

	config.JWTExpirationDur = getDurationEnv("JWT_EXPIRES_IN", 24*time.Hour)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv parses a duration environment variable, falling back to the
// default on absence or parse failure.
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return dur
}
