// Package config loads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Database
	DatabaseURL string
	MongoDBURL  string
	MongoDBName string
	RedisURL    string

	// JWT
	JWTSecret string

	// OpenAI
	OpenAIAPIKey   string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeoutSec  int

	// OAuth - Google Calendar
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleRefreshToken string
	GoogleCalendarID   string

	// Analysis
	EventDefaultHour      int
	EventDefaultDayOffset int
	EventDurationMin      int
	NoteSweepSchedule     string
	SweeperEnabled        bool

	// Cache
	CacheEmployeeTTLMin int

	// CORS
	AllowedOrigins []string

	// Demo data
	SeedDemoData bool
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		// Database
		DatabaseURL: getEnv("DATABASE_URL", ""),
		MongoDBURL:  getEnv("MONGODB_URL", ""),
		MongoDBName: getEnv("MONGODB_DATABASE", "kyarte"),
		RedisURL:    getEnv("REDIS_URL", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", ""),

		// OpenAI
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1024),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.2),
		LLMTimeoutSec:  getEnvInt("LLM_TIMEOUT_SEC", 30),

		// OAuth - Google Calendar
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		GoogleRefreshToken: getEnv("GOOGLE_REFRESH_TOKEN", ""),
		GoogleCalendarID:   getEnv("GOOGLE_CALENDAR_ID", "primary"),

		// Analysis
		EventDefaultHour:      getEnvInt("EVENT_DEFAULT_HOUR", 9),
		EventDefaultDayOffset: getEnvInt("EVENT_DEFAULT_DAY_OFFSET", 1),
		EventDurationMin:      getEnvInt("EVENT_DURATION_MIN", 60),
		NoteSweepSchedule:     getEnv("NOTE_SWEEP_SCHEDULE", "*/5 * * * *"),
		SweeperEnabled:        getEnvBool("SWEEPER_ENABLED", true),

		// Cache
		CacheEmployeeTTLMin: getEnvInt("CACHE_EMPLOYEE_TTL_MIN", 5),

		// CORS
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Demo data
		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
	}, nil
}

// placeholderAPIKeys are values commonly left behind by templates; a key
// matching one of these is treated as unconfigured.
var placeholderAPIKeys = []string{"dummy_key", "your_api_key", "your_api-key"}

// OpenAIConfigured reports whether a usable OpenAI API key is present.
func (c *Config) OpenAIConfigured() bool {
	key := strings.TrimSpace(c.OpenAIAPIKey)
	if key == "" {
		return false
	}
	for _, placeholder := range placeholderAPIKeys {
		if strings.EqualFold(key, placeholder) {
			return false
		}
	}
	return true
}

// GoogleCalendarConfigured reports whether the calendar export adapter
// can be wired.
func (c *Config) GoogleCalendarConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRefreshToken != ""
}

// LLMTimeout returns the per-request timeout for remote analysis calls.
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSec) * time.Second
}

// EventDuration returns the default calendar event length.
func (c *Config) EventDuration() time.Duration {
	return time.Duration(c.EventDurationMin) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
