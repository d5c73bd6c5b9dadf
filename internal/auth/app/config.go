package app

import (
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/joho/godotenv"
)

const (
	KeyModeStatic    = "static"
	KeyModeEphemeral = "ephemeral"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env       string // Environment name (default: development)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
	Port      int    // HTTP server port (default: 8080)

	Issuer             string        // iss of both token kinds (default: auth-service)
	PrivateKeyPEM      string        // RSA private key for access tokens, inline
	PrivateKeyFile     string        // RSA private key for access tokens, path
	KeyID              string        // kid header and JWKS key id (default: auth-key-1)
	RefreshTokenSecret string        // HS256 secret for refresh tokens
	KeyMode            string        // static or ephemeral (default: static)
	AccessTokenTTL     time.Duration // default: 1h
	RefreshTokenTTL    time.Duration // default: 1 year

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseFile   string // sqlite file (default: auth.db)
	DatabaseURL    string // postgres DSN
	PepperFile     string // Optional password pepper (default: /run/secrets/pepper)

	AdminEmail     string // Bootstrap admin email (required)
	AdminPassword  string // Bootstrap admin password (required)
	AdminFirstName string // default: System
	AdminLastName  string // default: Administrator

	CookieDomain string
	CookieSecure bool // default: true outside development

	HousekeepingInterval time.Duration // Expired session cleanup (default: 1h)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadEnvFiles loads .env.<ENV> and then .env. Values already present in the
// process environment win, and missing files are ignored.
func LoadEnvFiles() {
	env := getEnvOrDefault("ENV", "development")
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load()
}

func LoadConfig() Config {
	LoadEnvFiles()

	env := getEnvOrDefault("ENV", "development")

	return Config{
		Env:       env,
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		Port:      getEnvIntOrDefault("PORT", 8080),

		Issuer:             getEnvOrDefault("AUTH_ISSUER", jwtx.DefaultIssuer),
		PrivateKeyPEM:      os.Getenv("AUTH_PRIVATE_KEY"),
		PrivateKeyFile:     os.Getenv("AUTH_PRIVATE_KEY_FILE"),
		KeyID:              getEnvOrDefault("AUTH_KEY_ID", "auth-key-1"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		KeyMode:            getEnvOrDefault("AUTH_KEY_MODE", KeyModeStatic),
		AccessTokenTTL:     getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:    getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		DatabaseDriver: getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:   getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PepperFile:     getEnvOrDefault("PEPPER_FILE", "/run/secrets/pepper"),

		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminFirstName: getEnvOrDefault("ADMIN_FIRST_NAME", "System"),
		AdminLastName:  getEnvOrDefault("ADMIN_LAST_NAME", "Administrator"),

		CookieDomain: os.Getenv("COOKIE_DOMAIN"),
		CookieSecure: getEnvBoolOrDefault("COOKIE_SECURE", env != "development"),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
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
