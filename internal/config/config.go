package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

// DefaultQuery is the place loaded at startup when none is configured.
const DefaultQuery = "Kathmandu"

type AppConfig struct {
	WeatherAPIKey     string
	WeatherAPIBaseURL string

	// DefaultQuery is searched once at startup.
	DefaultQuery string

	// HTTPTimeout bounds each outbound call.
	HTTPTimeout time.Duration

	// RefreshInterval re-fetches the displayed place periodically (0 = disabled).
	RefreshInterval time.Duration

	// Outbound rate limit protecting the API key quota.
	RateLimitRPS   float64
	RateLimitBurst int

	// OTLPEndpoint enables tracing export when set.
	OTLPEndpoint string

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = strings.TrimSpace(os.Getenv("WEATHERAPI_API_KEY"))
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHERAPI_API_KEY is required")
	}
	cfg.WeatherAPIBaseURL = getenvDefault("WEATHERAPI_BASE_URL", providers.DefaultWeatherAPIBaseURL)
	cfg.DefaultQuery = strings.TrimSpace(getenvDefault("WEATHER_DEFAULT_QUERY", DefaultQuery))

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "0s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}

	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", 1)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", 5)
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
