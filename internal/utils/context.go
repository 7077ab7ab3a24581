// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-rest-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key the auth middleware stores validated token
// claims under.
var ClaimsCtxKey = contextKey("claims")

// LanguageCtxKey is the key the negotiated response language is stored under.
var LanguageCtxKey = contextKey("language")

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext retrieves the token claims of the authenticated caller.
//
// Example usage:
//
//	claims, ok := utils.GetClaimsFromContext(ctx)
//	if !ok {
//	    // request did not pass the auth middleware
//	}
func GetClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.Claims)
	return claims, ok
}

// GetCustomerIDFromContext returns the customer id of the authenticated
// caller. API-key tokens carry no customer id.
func GetCustomerIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.CustomerID()
}

// WithLanguage returns a copy of ctx carrying the ISO language code.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LanguageCtxKey, lang)
}

// GetLanguageFromContext returns the language stored by WithLanguage or
// fallback when none is set.
func GetLanguageFromContext(ctx context.Context, fallback string) string {
	if lang, ok := ctx.Value(LanguageCtxKey).(string); ok && lang != "" {
		return lang
	}
	return fallback
}
