package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL string
	Env        string
	LogLevel   string
	// StateDir is where the local storefront state file lives (session token,
	// anonymous cart/wishlist).
	StateDir string
	// HTTP client
	HTTPTimeout  time.Duration
	RequestRate  float64 // outbound requests per second
	RequestBurst int
	// Refresh coalescing window for cart re-fetches
	RefreshDebounce time.Duration
	// Catalog cache
	CacheProductTTL  time.Duration
	CacheCategoryTTL time.Duration
	// Admin upload
	MaxUploadSizeMB int64
	// Business rules
	MaxCartQuantity int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// We don't error here because system env vars are a valid source on their own.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		Env:        getEnv("ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		StateDir:   getEnv("STATE_DIR", defaultStateDir()),

		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT", 15*time.Second),
		RequestRate:  getFloatEnv("REQUEST_RATE", 10),
		RequestBurst: getIntEnv("REQUEST_BURST", 5),

		// The remote recomputes totals on every mutation; a 500ms trailing
		// window is enough to coalesce refresh bursts from rapid actions.
		RefreshDebounce: getDurationEnv("REFRESH_DEBOUNCE", 500*time.Millisecond),

		// Cache defaults: 10m products, 30m categories
		CacheProductTTL:  getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
		CacheCategoryTTL: getDurationEnv("CACHE_CATEGORY_TTL", 30*time.Minute),

		MaxUploadSizeMB: getInt64Env("MAX_UPLOAD_SIZE_MB", 10),

		MaxCartQuantity: getIntEnv("MAX_CART_QUANTITY", 1000),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.APIBaseURL == "" {
		log.Fatal("CRITICAL: API_BASE_URL environment variable is required")
	}
	if c.StateDir == "" {
		log.Fatal("CRITICAL: could not resolve a state directory, set STATE_DIR")
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "velora-storefront")
	}
	return ".velora-storefront"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
		log.Printf("Invalid int64 for %s, using fallback", key)
	}
	return fallback
}
