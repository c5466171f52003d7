package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends understood by STORE_BACKEND.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// LLM providers understood by LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort string

	StoreBackend   string
	DBPath         string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	LLMProvider string
	LLMAPIKey   string
	LLMModel    string
	LLMBaseURL  string
	// LLMTimeout bounds a single lookup call. Zero means no timeout.
	LLMTimeout time.Duration

	IDScheme string

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// A .env file in the current directory or up to five parents is loaded first;
// variables already set in the environment take precedence.
//
// A missing LLM API key is not an error here. Lookups fail at call time instead,
// so record keeping keeps working without a credential.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	v := viper.New()
	v.SetDefault("API_PORT", "9000")
	v.SetDefault("STORE_BACKEND", StoreSQLite)
	v.SetDefault("DB_PATH", "./data/notary-ally.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "")
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_API_KEY", "")
	v.SetDefault("API_KEY", "")
	v.SetDefault("LLM_MODEL", "gemini-2.5-flash")
	v.SetDefault("LLM_BASE_URL", "")
	v.SetDefault("LLM_TIMEOUT", "0s")
	v.SetDefault("ID_SCHEME", "uuid")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()

	cfg := &Config{
		APIPort:        v.GetString("API_PORT"),
		StoreBackend:   strings.ToLower(v.GetString("STORE_BACKEND")),
		DBPath:         v.GetString("DB_PATH"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		RedisKeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		LLMProvider:    strings.ToLower(v.GetString("LLM_PROVIDER")),
		LLMAPIKey:      v.GetString("LLM_API_KEY"),
		LLMModel:       v.GetString("LLM_MODEL"),
		LLMBaseURL:     v.GetString("LLM_BASE_URL"),
		IDScheme:       strings.ToLower(v.GetString("ID_SCHEME")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
	}

	// Older deployments read the Gemini key from API_KEY.
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = v.GetString("API_KEY")
	}

	switch cfg.StoreBackend {
	case StoreSQLite, StoreRedis, StoreMemory:
	default:
		return nil, fmt.Errorf("STORE_BACKEND must be one of sqlite, redis, memory: got %q", cfg.StoreBackend)
	}

	switch cfg.LLMProvider {
	case ProviderGemini:
	case ProviderOpenAI:
		if cfg.LLMBaseURL == "" {
			return nil, fmt.Errorf("LLM_BASE_URL is required when LLM_PROVIDER is openai")
		}
	default:
		return nil, fmt.Errorf("LLM_PROVIDER must be gemini or openai: got %q", cfg.LLMProvider)
	}

	switch cfg.IDScheme {
	case "uuid", "timestamp":
	default:
		return nil, fmt.Errorf("ID_SCHEME must be uuid or timestamp: got %q", cfg.IDScheme)
	}

	timeout, err := time.ParseDuration(v.GetString("LLM_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("LLM_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must not be negative")
	}
	cfg.LLMTimeout = timeout

	level, err := parseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json: got %q", cfg.LogFormat)
	}

	if cfg.StoreBackend == StoreSQLite {
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	return level, nil
}

// NewLogger builds the process logger from the configured level and format.
func (c *Config) NewLogger() *slog.Logger {
	return c.NewLoggerTo(os.Stdout)
}

// NewLoggerTo is NewLogger writing to w.
func (c *Config) NewLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
