// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the REST
// API server. It is populated by merging values from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, API key and localisation settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and the optional Redis settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the social login provider settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Resources holds paging limits and protected record ids.
	Resources Resources `envPrefix:"RESOURCES_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// issuance, API key exchange and localisation.
type App struct {
	// TokenSignKey is the HS256 secret. When empty, a secret is generated
	// (and persisted to TokenSignKeyFile when that is set).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenSignKeyFile stores a generated secret across restarts.
	// Env: APP_TOKEN_SIGN_KEY_FILE
	TokenSignKeyFile string `env:"TOKEN_SIGN_KEY_FILE"`

	// TokenIssuer is the "iss" claim embedded in and required from every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenAudience is the "aud" claim embedded in and required from every token.
	// Env: APP_TOKEN_AUDIENCE
	TokenAudience string `env:"TOKEN_AUDIENCE"`

	// AccessTokenDuration is the lifetime of an access token.
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RememberMeDuration replaces AccessTokenDuration on login with remember_me.
	// Env: APP_REMEMBER_ME_DURATION
	RememberMeDuration time.Duration `env:"REMEMBER_ME_DURATION"`

	// RefreshTokenDuration is the lifetime of a refresh token.
	// Env: APP_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// APIKey is exchanged for an access token at /auth/token. Empty
	// disables the exchange.
	// Env: APP_API_KEY
	APIKey string `env:"API_KEY"`

	// HashKey is the HMAC key used to derive API key subjects.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Languages is the ordered list of ISO codes the shop is translated to.
	// The first one is the default language.
	// Env: APP_LANGUAGES (comma separated)
	Languages []string `env:"LANGUAGES" envSeparator:","`

	// Currency is the ISO 4217 code prices are formatted in.
	// Env: APP_CURRENCY
	Currency string `env:"CURRENCY"`

	// LogLevel is the minimal zerolog level written ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// Version is exposed via GET /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the token denylist backend settings.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string: a PostgreSQL URL for the pgx
	// driver or a file path / "file::memory:" for sqlite3.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Driver is "pgx" (default) or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`
}

// Redis holds the optional Redis connection used for token revocation.
type Redis struct {
	// URL is a redis:// URL. Empty keeps the denylist in memory.
	// Env: STORAGE_REDIS_URL
	URL string `env:"URL"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxBodyBytes caps a request body after any gzip inflation.
	// Env: SERVER_MAX_BODY_BYTES
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES"`
}

// Adapter holds the social login provider settings.
type Adapter struct {
	GoogleClientID    string `env:"GOOGLE_CLIENT_ID"`
	FacebookAppID     string `env:"FACEBOOK_APP_ID"`
	FacebookAppSecret string `env:"FACEBOOK_APP_SECRET"`
	AppleClientID     string `env:"APPLE_CLIENT_ID"`

	// Base URLs are overridable so tests and proxies can stand in for the
	// real providers.
	GoogleBaseURL   string `env:"GOOGLE_BASE_URL"`
	FacebookBaseURL string `env:"FACEBOOK_BASE_URL"`
	AppleBaseURL    string `env:"APPLE_BASE_URL"`

	// RequestTimeout bounds every call to a provider.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Resources holds settings shared by every registered resource.
type Resources struct {
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE"`

	// RootCategoryID and HomeCategoryID can never be deleted.
	RootCategoryID int64 `env:"ROOT_CATEGORY_ID"`
	HomeCategoryID int64 `env:"HOME_CATEGORY_ID"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// DenylistSweepInterval is how often expired in-memory denylist entries
	// are purged.
	DenylistSweepInterval time.Duration `env:"DENYLIST_SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		build()
}
