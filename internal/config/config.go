// README: Config loader with env defaults for HTTP, storage, collaborators and planning settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrMissingKey   = errors.New("missing required configuration")
	ErrInvalidValue = errors.New("invalid configuration value")
)

type PlannerConfig struct {
	OriginAirport  string
	Currency       string
	Suggestions    int
	MaxImages      int
	Concurrency    int
	PreferDirect   bool
	Itinerary      bool
	RequestTimeout time.Duration
}

type Config struct {
	Env  string
	HTTP struct {
		Addr string
	}
	DB struct {
		// empty DSN means the embedded airport table is used
		DSN string
	}
	Airports struct {
		// CSV with code (or iata), name, city and country columns; replaces the embedded table
		File string
	}
	Redis struct {
		Addr string
	}
	Cache struct {
		TTL time.Duration
	}
	SerpAPI struct {
		Key     string
		BaseURL string
		RPS     float64
	}
	AI struct {
		Provider    string
		OpenAIKey   string
		OpenAIModel string
		ImageSize   string
		GeminiKey   string
	}
	Maps struct {
		APIKey string
	}
	Log struct {
		Level string
		File  string
	}
	Planner PlannerConfig
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Env = envOrDefault("TRIP_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("TRIP_HTTP_ADDR", ":8000")
	cfg.DB.DSN = os.Getenv("TRIP_DB_DSN")
	cfg.Airports.File = os.Getenv("TRIP_AIRPORTS_FILE")
	cfg.Redis.Addr = os.Getenv("TRIP_REDIS_ADDR")
	cfg.Cache.TTL = envOrDefaultDuration("TRIP_CACHE_TTL", 30*time.Minute)

	cfg.SerpAPI.Key = os.Getenv("SERPAPI_API_KEY")
	cfg.SerpAPI.BaseURL = envOrDefault("SERPAPI_BASE_URL", "https://serpapi.com")
	cfg.SerpAPI.RPS = envOrDefaultFloat("SERPAPI_RPS", 5)

	cfg.AI.Provider = strings.ToLower(envOrDefault("TRIP_AI_PROVIDER", "openai"))
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.OpenAIModel = envOrDefault("OPENAI_MODEL", "gpt-3.5-turbo")
	cfg.AI.ImageSize = envOrDefault("OPENAI_IMAGE_SIZE", "1024x1024")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.Log.Level = envOrDefault("TRIP_LOG_LEVEL", "info")
	cfg.Log.File = os.Getenv("TRIP_LOG_FILE")

	cfg.Planner.OriginAirport = strings.ToUpper(envOrDefault("TRIP_ORIGIN_AIRPORT", "TLV"))
	cfg.Planner.Currency = strings.ToUpper(envOrDefault("TRIP_CURRENCY", "USD"))
	cfg.Planner.Suggestions = envOrDefaultInt("TRIP_SUGGESTIONS", 2)
	cfg.Planner.MaxImages = envOrDefaultInt("TRIP_MAX_IMAGES", 4)
	cfg.Planner.Concurrency = envOrDefaultInt("TRIP_CONCURRENCY", 4)
	cfg.Planner.PreferDirect = envOrDefaultBool("TRIP_PREFER_DIRECT", false)
	cfg.Planner.Itinerary = envOrDefaultBool("TRIP_ITINERARY", true)
	cfg.Planner.RequestTimeout = envOrDefaultDuration("TRIP_REQUEST_TIMEOUT", 2*time.Minute)

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.SerpAPI.Key == "" {
		return errors.Join(ErrMissingKey, errors.New("SERPAPI_API_KEY is required"))
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: TRIP_CACHE_TTL must be positive, got %s", ErrInvalidValue, c.Cache.TTL)
	}
	switch c.AI.Provider {
	case "openai":
		if c.AI.OpenAIKey == "" {
			return errors.Join(ErrMissingKey, errors.New("OPENAI_API_KEY is required for TRIP_AI_PROVIDER=openai"))
		}
	case "gemini":
		if c.AI.GeminiKey == "" {
			return errors.Join(ErrMissingKey, errors.New("GEMINI_API_KEY is required for TRIP_AI_PROVIDER=gemini"))
		}
	default:
		return errors.New("TRIP_AI_PROVIDER must be openai or gemini")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
