package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/arcade/pkg/httpx"
	"github.com/aussiebroadwan/arcade/pkg/jwtx"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: arcade-auth)

	Algorithm      string // JWT signing algorithm (HS256, EdDSA) (default: HS256)
	Secret         string // Optional: HS256 shared secret, overrides SecretFile
	SecretFile     string // HS256 secret file, created on first start (default: ./jwt-secret)
	SigningKeyFile string // EdDSA PKCS8 PEM, created on first start (default: ./signing-key.pem)

	AccessTTL    time.Duration // Access token lifetime (default: 15m)
	RefreshTTL   time.Duration // Refresh token lifetime (default: 7d)
	TwoFactorTTL time.Duration // Pending second factor token lifetime (default: 2m)

	DatabaseFile string // Path to SQLite database file (default: ./auth.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	TokenLimit     httpx.RateLimitConfig // RATELIMIT_STRICT_*
	PublicLimit    httpx.RateLimitConfig // RATELIMIT_PUBLIC_*
	TrustedProxies string                // CIDRs allowed to set X-Forwarded-For (default: none)
}

func LoadConfig() Config {
	return Config{
		Issuer:         getEnvOrDefault("AUTH_ISSUER", "arcade-auth"),
		Algorithm:      getEnvOrDefault("AUTH_ALGORITHM", jwtx.AlgHS256),
		Secret:         os.Getenv("AUTH_SECRET"),
		SecretFile:     getEnvOrDefault("AUTH_SECRET_FILE", "jwt-secret"),
		SigningKeyFile: getEnvOrDefault("AUTH_SIGNING_KEY_FILE", "signing-key.pem"),

		AccessTTL:    getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:   getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		TwoFactorTTL: getEnvDurationOrDefault("AUTH_TWO_FACTOR_TTL", jwtx.DefaultTwoFactorTokenTTL),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:   getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		TokenLimit:     httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		PublicLimit:    httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
		TrustedProxies: os.Getenv("TRUSTED_PROXIES"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
