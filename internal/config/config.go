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

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port           string
	Env            string
	DefaultLang    string
	MigrationsPath string
	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies []string

	Auth  AuthConfig
	DB    DatabaseConfig
	Redis RedisConfig
	Cache CacheConfig
	CORS  CORSConfig
}

// AuthConfig contains token signing and login throttling parameters.
type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	LoginRatePerMin int
}

// DatabaseConfig contains PostgreSQL connection and pool parameters.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig contains Redis connection parameters. An empty Host disables caching.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// CacheConfig contains TTLs for cached reference data.
type CacheConfig struct {
	ReferenceTTL time.Duration
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first.
func Load() (*Config, error) {
	// Missing .env is fine; production relies on real environment variables.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.DefaultLang = strings.ToUpper(strings.TrimSpace(getEnv("DEFAULT_LANG", "EL")))
	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", "file://migrations")
	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	// Database
	cfg.DB = DatabaseConfig{
		Host:         getEnv("DB_HOST", ""),
		Port:         getEnv("DB_PORT", "5432"),
		User:         getEnv("DB_USER", ""),
		Password:     getEnv("DB_PASSWORD", ""),
		Name:         getEnv("DB_NAME", ""),
		SSLMode:      getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	}

	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	cfg.Auth = AuthConfig{
		JWTSecret: getEnv("JWT_SECRET", ""),
	}

	var err error
	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"DB_MAX_OPEN_CONNS", 25, &cfg.DB.MaxOpenConns},
		{"DB_MAX_IDLE_CONNS", 5, &cfg.DB.MaxIdleConns},
		{"REDIS_DB", 0, &cfg.Redis.DB},
		{"LOGIN_RATE_PER_MIN", 5, &cfg.Auth.LoginRatePerMin},
	}
	for _, e := range ints {
		if *e.dst, err = getEnvInt(e.key, e.def); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", e.key, err)
		}
	}
	if cfg.Auth.TokenTTL, err = parseDurationEnv("JWT_TTL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.DB.ConnMaxLifetime, err = parseDurationEnv("DB_CONN_MAX_LIFETIME", "5m"); err != nil {
		return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %w", err)
	}
	if cfg.Cache.ReferenceTTL, err = parseDurationEnv("PLTAB_CACHE_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid PLTAB_CACHE_TTL: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}
	if cfg.Auth.TokenTTL == 0 {
		return nil, errors.New("JWT_TTL must be greater than zero")
	}
	if cfg.Auth.LoginRatePerMin <= 0 {
		return nil, errors.New("LOGIN_RATE_PER_MIN must be greater than zero")
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer, or def if empty.
func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
