package adapter

import (
	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
)

// NewSocialProviders builds every provider keyed by its route name.
// Providers without credentials are still registered and answer
// [ErrProviderNotConfigured].
func NewSocialProviders(cfg config.Adapter, logger *logger.Logger) map[string]SocialProvider {
	return map[string]SocialProvider{
		ProviderGoogle:   NewGoogleProvider(cfg.GoogleBaseURL, cfg.GoogleClientID, cfg.RequestTimeout, logger),
		ProviderFacebook: NewFacebookProvider(cfg.FacebookBaseURL, cfg.FacebookAppID, cfg.FacebookAppSecret, cfg.RequestTimeout, logger),
		ProviderApple:    NewAppleProvider(cfg.AppleBaseURL, cfg.AppleClientID, cfg.RequestTimeout, logger),
	}
}
