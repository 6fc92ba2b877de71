package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/so-ota-biz/fridge-chef/pkg/csrf"
	"github.com/so-ota-biz/fridge-chef/pkg/jwtx"
	"gopkg.in/yaml.v3"
)

// Defaults shared by LoadConfig and the tests.
const (
	DefaultAccessTokenMaxAge  = 15 * time.Minute
	DefaultRefreshTokenMaxAge = 7 * 24 * time.Hour
	DefaultCSRFTokenMaxAge    = csrf.DefaultTTL
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is required")

type Config struct {
	JWTSecret          string        // Required: HMAC secret, at least 32 bytes
	JWTIssuer          string        // Optional: iss claim (default: fridge-chef)
	AccessTokenMaxAge  time.Duration // Access credential and cookie lifetime (default: 15m)
	RefreshTokenMaxAge time.Duration // Refresh credential and cookie lifetime (default: 7d)
	CSRFTokenMaxAge    time.Duration // csrfToken cookie lifetime (default: 24h)

	CookieSecure   bool   // Secure attribute (forced on in production)
	CookieSameSite string // strict, lax or none (default: lax)
	CookieDomain   string // Optional cookie domain

	RequireEmailConfirmation bool          // Sign-in waits for /auth/confirm (default: true)
	ConfirmationTokenTTL     time.Duration // Confirmation window (default: 24h)
	PublicBaseURL            string        // Public origin used in confirmation links

	DatabaseFile         string        // SQLite database file (default: ./fridge-chef.db)
	PepperFile           string        // Password pepper file, created on first start (default: ./pepper)
	Env                  string        // dev, test or production (default: dev)
	LogLevel             string        // debug, info, warn, error (default: info)
	LogFormat            string        // json or text (default: json)
	Port                 int           // HTTP port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Unconfirmed account purge interval (default: 1h)
}

// Production reports whether ENV=production.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadConfig reads the environment. When CONFIG_FILE names a YAML file its
// keys (lower snake case env names) fill in whatever the environment leaves
// unset.
func LoadConfig() (Config, error) {
	src := source{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		file, err := readConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		src.file = file
	}

	port := src.getEnvIntOrDefault("PORT", 8080)
	cfg := Config{
		JWTSecret:          src.getEnvOrDefault("JWT_SECRET", ""),
		JWTIssuer:          src.getEnvOrDefault("JWT_ISSUER", "fridge-chef"),
		AccessTokenMaxAge:  src.getEnvDurationOrDefault("ACCESS_TOKEN_MAX_AGE", DefaultAccessTokenMaxAge),
		RefreshTokenMaxAge: src.getEnvDurationOrDefault("REFRESH_TOKEN_MAX_AGE", DefaultRefreshTokenMaxAge),
		CSRFTokenMaxAge:    src.getEnvDurationOrDefault("CSRF_TOKEN_MAX_AGE", DefaultCSRFTokenMaxAge),

		CookieSecure:   src.getEnvBoolOrDefault("COOKIE_SECURE", false),
		CookieSameSite: src.getEnvOrDefault("COOKIE_SAMESITE", "lax"),
		CookieDomain:   src.getEnvOrDefault("COOKIE_DOMAIN", ""),

		RequireEmailConfirmation: src.getEnvBoolOrDefault("REQUIRE_EMAIL_CONFIRMATION", true),
		ConfirmationTokenTTL:     src.getEnvDurationOrDefault("CONFIRMATION_TOKEN_TTL", 24*time.Hour),
		PublicBaseURL: src.getEnvOrDefault(
			"PUBLIC_BASE_URL",
			fmt.Sprintf("http://localhost:%d", port),
		),

		DatabaseFile:         src.getEnvOrDefault("DATABASE_FILE", "fridge-chef.db"),
		PepperFile:           src.getEnvOrDefault("PEPPER_FILE", "pepper"),
		Env:                  src.getEnvOrDefault("ENV", "dev"),
		LogLevel:             src.getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            src.getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 port,
		ShutdownGracePeriod:  src.getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: src.getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg, nil
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrJWTSecretMissing
	}
	if len(c.JWTSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("%w: JWT_SECRET has %d bytes, need %d", jwtx.ErrSecretTooShort, len(c.JWTSecret), jwtx.MinSecretLength)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

func readConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file map[string]string
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

// source resolves a key from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return strings.TrimSpace(s.file[strings.ToLower(key)])
}

func (s source) getEnvOrDefault(key, defaultValue string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := s.lookup(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func (s source) getEnvIntOrDefault(key string, defaultValue int) int {
	value := s.lookup(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

// getEnvDurationOrDefault accepts Go durations ("15m") and plain integers
// as milliseconds. Zero, negative or unparsable values fall back.
func (s source) getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := s.lookup(key)
	if value == "" {
		return defaultValue
	}

	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		if ms <= 0 {
			return defaultValue
		}
		return time.Duration(ms) * time.Millisecond
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}

	return defaultValue
}
