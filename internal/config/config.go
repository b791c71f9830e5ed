package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingEnv is returned by Validate when a required variable is unset.
var ErrMissingEnv = errors.New("missing required environment variable")

const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

type Config struct {
	Port string

	// MongoURI is the MongoDB connection string (MONGODB_URI).
	MongoURI string
	// DBName is the database holding the users and activities collections.
	DBName string
	// DBTimeout bounds connect and ping at startup (default 10s).
	DBTimeout time.Duration

	// AuthProvider is "firebase" (default) or "jwt".
	AuthProvider string
	// FirebaseServiceKey is the base64-encoded service account JSON (FB_SERVICE_KEY).
	FirebaseServiceKey string
	// JWTSecret verifies HS256 tokens when AuthProvider is "jwt".
	JWTSecret string

	// Env is "dev" (default) or "prod".
	Env string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json". LogLevel is debug|info|warn|error.
	LogFormat string
	LogLevel  string

	// MaxBodyBytes caps request bodies on routes that accept one (default 1 MiB).
	MaxBodyBytes int

	// CORSAllowedOrigins is set via CORS_ALLOWED_ORIGINS (comma-separated).
	// When empty, no CORS headers are sent.
	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "5000"),

		MongoURI:  getEnv("MONGODB_URI", ""),
		DBName:    getEnv("DB_NAME", ""),
		DBTimeout: time.Duration(getEnvInt("DB_TIMEOUT_SECONDS", 10)) * time.Second,

		AuthProvider:       strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderFirebase)),
		FirebaseServiceKey: getEnv("FB_SERVICE_KEY", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),

		Env: getEnv("ENV", "dev"),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),

		MaxBodyBytes: getEnvInt("MAX_BODY_BYTES", 1<<20),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// Validate reports the first required setting that is missing or inconsistent.
func (c Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("%w: MONGODB_URI", ErrMissingEnv)
	}
	if c.DBName == "" {
		return fmt.Errorf("%w: DB_NAME", ErrMissingEnv)
	}
	switch c.AuthProvider {
	case AuthProviderFirebase:
		if c.FirebaseServiceKey == "" {
			return fmt.Errorf("%w: FB_SERVICE_KEY", ErrMissingEnv)
		}
	case AuthProviderJWT:
		if c.JWTSecret == "" {
			return fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv)
		}
		if c.Env == "prod" {
			return errors.New("AUTH_PROVIDER=jwt is not allowed when ENV=prod")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	return nil
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
