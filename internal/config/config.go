package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded once at startup and
// passed down explicitly. Business logic never reads the environment.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Email     EmailConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Backup    BackupConfig
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Env  string // "development" or "production"
	Host string
	Port string
}

// DatabaseConfig holds the resolved database connection settings. URL is
// empty when no PostgreSQL configuration was provided, in which case the
// application falls back to a local SQLite file.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
}

// EmailConfig holds SMTP transport settings for the notifier.
type EmailConfig struct {
	Host   string
	Port   int
	User   string
	Pass   string
	From   string
	To     string
	UseTLS bool
}

// CORSConfig holds the cross-origin allow list.
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds the per-client request quota.
type RateLimitConfig struct {
	Max           int
	WindowSeconds int
}

// BackupConfig holds the local JSON backup settings.
type BackupConfig struct {
	DataDir    string
	MaxEntries int
}

// Load reads configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		App: AppConfig{
			Env:  getEnv("ENV", "development"),
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnv("PORT", "5000"),
		},
		Database: DatabaseConfig{
			URL:        resolveDatabaseURL(),
			SQLitePath: filepath.Join(dataDir, "contacts.db"),
		},
		Email: EmailConfig{
			Host:   getEnv("EMAIL_HOST", ""),
			Port:   getEnvAsInt("EMAIL_PORT", 587),
			User:   getEnv("EMAIL_USER", ""),
			Pass:   getEnv("EMAIL_PASS", ""),
			From:   getEnv("EMAIL_FROM", "noreply@thorsignia.in"),
			To:     getEnv("EMAIL_TO", "info@thorsignia.in"),
			UseTLS: getEnvAsBool("EMAIL_SECURE", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		},
		RateLimit: RateLimitConfig{
			Max:           getEnvAsInt("RATE_LIMIT_MAX", 5),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Backup: BackupConfig{
			DataDir:    dataDir,
			MaxEntries: getEnvAsInt("BACKUP_MAX_ENTRIES", 1000),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the process runs in production mode, which
// disables the debug read endpoints and the local file backup.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Configured reports whether the SMTP transport has enough settings to send.
func (e *EmailConfig) Configured() bool {
	return e.Host != "" && e.User != "" && e.Pass != ""
}

func validate(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.App.Env != "development" && cfg.App.Env != "production" {
		return fmt.Errorf("ENV must be development or production, got %q", cfg.App.Env)
	}
	if cfg.RateLimit.Max <= 0 || cfg.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit max and window must be positive")
	}
	return nil
}

// resolveDatabaseURL returns DATABASE_URL if set, otherwise composes a
// postgres URL from DB_USER/DB_PASSWORD/DB_HOST/DB_PORT/DB_NAME with the
// password percent-encoded. Returns "" when neither form is configured.
func resolveDatabaseURL() string {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v
	}

	user := os.Getenv("DB_USER")
	name := os.Getenv("DB_NAME")
	if user == "" || name == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, os.Getenv("DB_PASSWORD")),
		Host:   getEnv("DB_HOST", "localhost") + ":" + getEnv("DB_PORT", "5432"),
		Path:   "/" + name,
	}
	q := u.Query()
	q.Set("sslmode", getEnv("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
