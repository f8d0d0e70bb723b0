package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Port           string
	Storage        StorageConfig
	Auth           AuthConfig
	Upload         UploadConfig
	Logging        LoggingConfig
	CORS           CORSConfig
	RateLimit      RateLimitConfig
	History        bool
	RequestTimeout time.Duration
}

type StorageConfig struct {
	Driver   string
	MongoURI string
	MongoDB  string
}

type AuthConfig struct {
	AdminPasscode     string
	AdminPasscodeHash string
	JWTSecret         string
	JWTExpiry         time.Duration
}

type UploadConfig struct {
	Dir        string
	MaxMemory  int64
	PublicPath string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AllowAll reports whether every origin is accepted.
func (c CORSConfig) AllowAll() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return len(c.AllowedOrigins) == 0
}

// OriginAllowed reports whether a browser Origin header value is accepted.
func (c CORSConfig) OriginAllowed(origin string) bool {
	if c.AllowAll() || origin == "" {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

type RateLimitConfig struct {
	LoginPerMinute int
}

// Load reads configuration from the environment. Callers load .env files first.
func Load() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "5000"),
		Storage: StorageConfig{
			Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMongo)),
			MongoURI: os.Getenv("MONGO_URI"),
			MongoDB:  getEnv("MONGO_DB", "attendance"),
		},
		Auth: AuthConfig{
			AdminPasscode:     os.Getenv("ADMIN_PASSCODE"),
			AdminPasscodeHash: os.Getenv("ADMIN_PASSCODE_HASH"),
			JWTSecret:         os.Getenv("JWT_SECRET"),
			JWTExpiry:         time.Duration(getEnvInt("JWT_EXP_MIN", 60)) * time.Minute,
		},
		Upload: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "uploads"),
			MaxMemory:  int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
			PublicPath: "/uploads",
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getEnvInt("RATE_LIMIT_LOGIN_PER_MIN", 0),
		},
		History:        getEnvBool("ACTIVE_EVENT_HISTORY", false),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),
	}

	switch cfg.Storage.Driver {
	case DriverMongo:
		if cfg.Storage.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverMongo, DriverMemory, cfg.Storage.Driver)
	}
	if cfg.Auth.AdminPasscode == "" && cfg.Auth.AdminPasscodeHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSCODE is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
