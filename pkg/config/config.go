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

// ErrMissingAPIKey is returned when the selected provider has no credential.
var ErrMissingAPIKey = errors.New("missing API key: set API_KEY (or GEMINI_API_KEY)")

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Admin     AdminConfig
	LLM       LLMConfig
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Session   SessionConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type AdminConfig struct {
	Token string // Token for /admin/logs; empty disables the endpoint
}

// RedisConfig is only used as rate limiter storage. Empty Host keeps the limiter in memory.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type LLMConfig struct {
	Provider          string  // gemini | openai
	ImageRatePerSec   float64 // 0 = unlimited
	ImageRequestBurst int
}

type GeminiConfig struct {
	APIKey     string
	Model      string // text model, e.g. gemini-2.5-flash
	ImageModel string // e.g. imagen-4.0-generate-001
}

type OpenAIConfig struct {
	APIKey     string
	Model      string
	ImageModel string
	BaseURL    string
}

type SessionConfig struct {
	TTL       time.Duration
	SweepCron string
}

type LogConfig struct {
	Dir           string
	Console       bool
	RetentionDays int
	RetentionCron string
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
	// Stricter limit for endpoints that call the AI provider.
	GenerateMaxRequests   int
	GenerateWindowSeconds int
}

type CORSConfig struct {
	AllowOrigins string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Affiliate Blog Post Generator"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		LLM: LLMConfig{
			Provider:          strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
			ImageRatePerSec:   getEnvFloat("IMAGE_RATE_PER_SEC", 0),
			ImageRequestBurst: getEnvInt("IMAGE_RATE_BURST", 3),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("API_KEY", os.Getenv("GEMINI_API_KEY")),
			Model:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			ImageModel: getEnv("GEMINI_IMAGE_MODEL", "imagen-4.0-generate-001"),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			Model:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			ImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
			BaseURL:    getEnv("OPENAI_BASE_URL", ""),
		},
		Session: SessionConfig{
			TTL:       time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
			SweepCron: getEnv("SESSION_SWEEP_CRON", "*/5 * * * *"),
		},
		Log: LogConfig{
			Dir:           getEnv("LOG_DIR", "logs"),
			Console:       getEnv("LOG_CONSOLE", "true") == "true",
			RetentionDays: getEnvInt("LOG_RETENTION_DAYS", 14),
			RetentionCron: getEnv("LOG_RETENTION_CRON", "0 3 * * *"),
		},
		RateLimit: RateLimitConfig{
			Enabled:               getEnv("RATE_LIMIT_ENABLED", "true") == "true",
			MaxRequests:           getEnvInt("RATE_LIMIT_MAX", 120),
			WindowSeconds:         getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
			GenerateMaxRequests:   getEnvInt("RATE_LIMIT_GENERATE_MAX", 10),
			GenerateWindowSeconds: getEnvInt("RATE_LIMIT_GENERATE_WINDOW_SECONDS", 60),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return ErrMissingAPIKey
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: LLM_PROVIDER=openai requires OPENAI_API_KEY", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}
