package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidServerConfigs indicates that neither an HTTP nor a gRPC
	// address is configured.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or an unsupported driver).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, no languages or a non-positive token lifetime).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidResourceConfigs indicates invalid paging limits.
	ErrInvalidResourceConfigs = errors.New("invalid resources configuration")
)
