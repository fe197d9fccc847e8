package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	DB DBConfig

	RedisURL string

	Log LogConfig

	Admin AdminConfig

	Mail MailConfig

	// PublicAllowedOrigins is the CORS allowlist for the marketing site and admin console.
	// Example: https://www.example-cleaning.com,http://localhost:5173
	PublicAllowedOrigins []string

	// Per-IP limit on the public submission endpoints.
	PublicRateLimitPerMinute int
	PublicRateLimitBurst     int
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type LogConfig struct {
	Level  string
	Format string
}

type AdminConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

type MailConfig struct {
	// AdminNotifyEmail receives a copy of every new submission.
	AdminNotifyEmail string

	SESRegion string
	FromEmail string
	FromName  string
}

func (m MailConfig) Enabled() bool {
	return m.SESRegion != "" && m.FromEmail != ""
}

func Load() Config {
	// Local dev: load variables from .env if present. Production uses real env vars.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "cleanbook"),
			User:     env("DB_USER", "cleanbook"),
			Password: env("DB_PASSWORD", "cleanbook"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		RedisURL: env("REDIS_URL", "redis://localhost:6379/0"),
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "console"),
		},
		Admin: AdminConfig{
			JWTSecret:  env("ADMIN_JWT_SECRET", "cleanbook-dev-secret"),
			SessionTTL: envDuration("ADMIN_SESSION_TTL", 12*time.Hour),
		},
		Mail: MailConfig{
			AdminNotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),
			SESRegion:        os.Getenv("SES_REGION"),
			FromEmail:        os.Getenv("SES_FROM_EMAIL"),
			FromName:         env("SES_FROM_NAME", "Cleaning Bookings"),
		},
		PublicAllowedOrigins:     envList("PUBLIC_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
		PublicRateLimitPerMinute: envInt("PUBLIC_RATE_LIMIT_PER_MINUTE", 10),
		PublicRateLimitBurst:     envInt("PUBLIC_RATE_LIMIT_BURST", 5),
	}
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// envDuration accepts Go durations ("12h") or plain seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
