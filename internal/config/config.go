// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SCMS_DB_PATH,required"`
	JWTSecret  string `env:"SCMS_JWT_SECRET,required"`
	ServerHost string `env:"SCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SCMS_SERVER_PORT" envDefault:"3001"`
	Env        string `env:"SCMS_ENV" envDefault:"development"`
	LogLevel   string `env:"SCMS_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"SCMS_UPLOADS_DIR" envDefault:"./uploads"`

	// TokenTTLHours is how long an issued admin token stays valid.
	// There is no refresh or revocation; a token lives until expiry.
	TokenTTLHours int `env:"SCMS_TOKEN_TTL_HOURS" envDefault:"24"`

	// Bootstrap admin credential, seeded only when the users table is empty.
	AdminUsername string `env:"SCMS_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"SCMS_ADMIN_PASSWORD" envDefault:"changeme"`

	// CORSOrigins is a comma-separated list of allowed origins for the
	// admin client. In development any localhost origin is also allowed.
	CORSOrigins string `env:"SCMS_CORS_ORIGINS"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// AllowedOrigins returns the configured CORS origins as a slice.
func (c Config) AllowedOrigins() []string {
	if c.CORSOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// MinJWTSecretLength is the minimum required length for the token signing secret.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("SCMS_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("SCMS_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("SCMS_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
