package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var envVars = []string{
	"API_PORT", "STORE_BACKEND", "DB_PATH",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
	"LLM_PROVIDER", "LLM_API_KEY", "API_KEY", "LLM_MODEL", "LLM_BASE_URL", "LLM_TIMEOUT",
	"ID_SCHEME", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every config variable for the duration of the test.
// Empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

// inTempDir runs the test from a directory without a .env file.
func inTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(originalWd)
	})
	return tmpDir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "defaults",
			setupEnv: func(t *testing.T) {},
			wantErr:  false,
			checkConfig: func(cfg *Config) bool {
				return cfg.APIPort == "9000" &&
					cfg.StoreBackend == StoreSQLite &&
					cfg.DBPath == "./data/notary-ally.db" &&
					cfg.LLMProvider == ProviderGemini &&
					cfg.LLMModel == "gemini-2.5-flash" &&
					cfg.LLMAPIKey == "" &&
					cfg.LLMTimeout == 0 &&
					cfg.IDScheme == "uuid" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text"
			},
		},
		{
			name: "API_KEY fallback for the gemini key",
			setupEnv: func(t *testing.T) {
				t.Setenv("API_KEY", "legacy-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMAPIKey == "legacy-key"
			},
		},
		{
			name: "LLM_API_KEY wins over API_KEY",
			setupEnv: func(t *testing.T) {
				t.Setenv("API_KEY", "legacy-key")
				t.Setenv("LLM_API_KEY", "new-key")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMAPIKey == "new-key"
			},
		},
		{
			name: "redis backend",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORE_BACKEND", "Redis")
				t.Setenv("REDIS_ADDR", "cache:6380")
				t.Setenv("REDIS_DB", "2")
				t.Setenv("REDIS_KEY_PREFIX", "ally:")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.StoreBackend == StoreRedis &&
					cfg.RedisAddr == "cache:6380" &&
					cfg.RedisDB == 2 &&
					cfg.RedisKeyPrefix == "ally:"
			},
		},
		{
			name: "unknown backend",
			setupEnv: func(t *testing.T) {
				t.Setenv("STORE_BACKEND", "postgres")
			},
			wantErr: true,
		},
		{
			name: "openai provider requires base url",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_PROVIDER", "openai")
			},
			wantErr: true,
		},
		{
			name: "openai provider with base url",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_PROVIDER", "openai")
				t.Setenv("LLM_BASE_URL", "http://localhost:8080")
				t.Setenv("LLM_MODEL", "Llama-3.1-8B-Instruct")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMProvider == ProviderOpenAI &&
					cfg.LLMBaseURL == "http://localhost:8080" &&
					cfg.LLMModel == "Llama-3.1-8B-Instruct"
			},
		},
		{
			name: "unknown provider",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_PROVIDER", "anthropic")
			},
			wantErr: true,
		},
		{
			name: "timeout",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_TIMEOUT", "15s")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMTimeout == 15*time.Second
			},
		},
		{
			name: "invalid timeout",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_TIMEOUT", "soon")
			},
			wantErr: true,
		},
		{
			name: "negative timeout",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_TIMEOUT", "-1s")
			},
			wantErr: true,
		},
		{
			name: "timestamp ids",
			setupEnv: func(t *testing.T) {
				t.Setenv("ID_SCHEME", "timestamp")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.IDScheme == "timestamp"
			},
		},
		{
			name: "unknown id scheme",
			setupEnv: func(t *testing.T) {
				t.Setenv("ID_SCHEME", "sequence")
			},
			wantErr: true,
		},
		{
			name: "debug json logging",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "json")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LogLevel == slog.LevelDebug && cfg.LogFormat == "json"
			},
		},
		{
			name: "invalid log level",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			setupEnv: func(t *testing.T) {
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	inTempDir(t)
	clearEnv(t)

	dbPath := filepath.Join(t.TempDir(), "test", "db.db")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := inTempDir(t)
	clearEnv(t)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("API_PORT=9100\nLLM_MODEL=gemini-2.0-flash\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv does not override variables that are already present, even empty ones.
	_ = os.Unsetenv("API_PORT")
	_ = os.Unsetenv("LLM_MODEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9100" {
		t.Errorf("Load() APIPort = %v, want 9100", cfg.APIPort)
	}
	if cfg.LLMModel != "gemini-2.0-flash" {
		t.Errorf("Load() LLMModel = %v, want gemini-2.0-flash", cfg.LLMModel)
	}
	t.Cleanup(func() {
		_ = os.Unsetenv("API_PORT")
		_ = os.Unsetenv("LLM_MODEL")
	})
}

func TestConfig_NewLoggerTo(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantJSON bool
		wantLogs bool
	}{
		{name: "text at info", cfg: Config{LogLevel: slog.LevelInfo, LogFormat: "text"}, wantLogs: true},
		{name: "json at info", cfg: Config{LogLevel: slog.LevelInfo, LogFormat: "json"}, wantJSON: true, wantLogs: true},
		{name: "info filtered at warn", cfg: Config{LogLevel: slog.LevelWarn, LogFormat: "text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.NewLoggerTo(&buf).Info("hello", "k", "v")

			out := buf.String()
			if (out != "") != tt.wantLogs {
				t.Fatalf("output = %q, want logs %v", out, tt.wantLogs)
			}
			if tt.wantLogs && strings.HasPrefix(out, "{") != tt.wantJSON {
				t.Errorf("output = %q, want JSON %v", out, tt.wantJSON)
			}
		})
	}
}
