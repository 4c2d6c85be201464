package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends accepted by STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Port string

	DomesticDataset      string
	InternationalDataset string

	StoreBackend string
	UsersFile    string
	ContactFile  string
	SQLitePath   string
	PostgresDSN  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	GeminiAPIKey     string
	GeminiModel      string
	AssistantTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string
	StaticDir   string

	LogLevel  string
	LogFormat string
}

// LoadDotenv loads a .env file when present. A missing file is not an error.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// FromEnv builds the configuration from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:                 getenv("PORT", "5000"),
		DomesticDataset:      getenv("DOMESTIC_DATASET", "indian_scholarships.csv"),
		InternationalDataset: getenv("INTERNATIONAL_DATASET", "international_scholarships.csv"),
		StoreBackend:         strings.ToLower(getenv("STORE_BACKEND", BackendFile)),
		UsersFile:            getenv("USERS_FILE", "users.json"),
		ContactFile:          getenv("CONTACT_FILE", "contact_data.json"),
		SQLitePath:           getenv("SQLITE_PATH", "scholarhub.db"),
		PostgresDSN:          firstNonEmpty(os.Getenv("DB_URL"), os.Getenv("DATABASE_URL")),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		CORSOrigins:          splitList(getenv("CORS_ORIGINS", "http://localhost:5173")),
		StaticDir:            getenv("STATIC_DIR", "frontend/dist"),
		LogLevel:             strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:            strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationEnv("ASSISTANT_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.AssistantTimeout, err = durationEnv("ASSISTANT_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	switch cfg.StoreBackend {
	case BackendFile, BackendSQLite:
	case BackendPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("config: STORE_BACKEND=postgres requires DB_URL or DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return i, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
