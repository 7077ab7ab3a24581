// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: no server address", ErrInvalidServerConfigs)
	}
	if cfg.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("%w: max body size must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if !slices.Contains([]string{DriverPostgres, DriverSQLite}, cfg.Storage.DB.Driver) {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if len(cfg.App.Languages) == 0 {
		return fmt.Errorf("%w: no languages", ErrInvalidAppConfigs)
	}
	if strings.TrimSpace(cfg.App.TokenIssuer) == "" || strings.TrimSpace(cfg.App.TokenAudience) == "" {
		return fmt.Errorf("%w: token issuer and audience are required", ErrInvalidAppConfigs)
	}
	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 || cfg.App.RememberMeDuration <= 0 {
		return fmt.Errorf("%w: token durations must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Resources.MaxPageSize < 1 || cfg.Resources.DefaultPageSize < 1 || cfg.Resources.DefaultPageSize > cfg.Resources.MaxPageSize {
		return fmt.Errorf("%w: page sizes", ErrInvalidResourceConfigs)
	}

	return nil
}
