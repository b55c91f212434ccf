package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server Settings
	Host      string
	Port      string
	BodyLimit int // bytes

	// Database Settings
	DBDriver    string // sqlite | postgres
	DatabaseURL string
	SQLitePath  string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBLogLevel  string

	// Image Store
	UploadDir        string
	UploadURLPrefix  string
	PlaceholderImage string

	// Reporting
	Location *time.Location

	// Auth
	JWTSecret   string
	JWTTTL      time.Duration
	RequireAuth bool
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	bodyLimitMB, err := intEnv("BODY_LIMIT_MB", 16)
	if err != nil {
		return nil, err
	}
	ttlHours, err := intEnv("JWT_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	requireAuth, err := boolEnv("REQUIRE_AUTH", false)
	if err != nil {
		return nil, err
	}
	loc, err := location(os.Getenv("TZ_NAME"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Host:      os.Getenv("HOST"),
		Port:      stringEnv("PORT", "10000"),
		BodyLimit: bodyLimitMB * 1024 * 1024,

		DBDriver:    stringEnv("DB_DRIVER", "sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  stringEnv("SQLITE_PATH", "pos.db"),
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      stringEnv("DB_PORT", "5432"),
		DBLogLevel:  stringEnv("DB_LOG_LEVEL", "warn"),

		UploadDir:        stringEnv("UPLOAD_DIR", "static/uploads"),
		UploadURLPrefix:  stringEnv("UPLOAD_URL_PREFIX", "/static/uploads"),
		PlaceholderImage: stringEnv("PLACEHOLDER_IMAGE", "https://via.placeholder.com/100"),

		Location: loc,

		JWTSecret:   stringEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
		JWTTTL:      time.Duration(ttlHours) * time.Hour,
		RequireAuth: requireAuth,
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func location(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("TZ_NAME: %w", err)
	}
	return loc, nil
}
