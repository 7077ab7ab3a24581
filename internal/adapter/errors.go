package adapter

import "errors"

var (
	// ErrTokenRejected is returned when a provider does not accept a token,
	// or accepts it for another application.
	ErrTokenRejected = errors.New("provider rejected the token")

	// ErrProviderUnavailable is returned when a provider cannot be reached
	// or answers with a server error.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrNoEmail is returned when a verified identity carries no email.
	ErrNoEmail = errors.New("provider identity has no email")

	// ErrProviderNotConfigured is returned for a provider without credentials.
	ErrProviderNotConfigured = errors.New("provider is not configured")
)
