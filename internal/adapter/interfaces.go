// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the social login providers.
//
// Every provider implements [SocialProvider]: it verifies a token the client
// obtained from the provider and returns the identity the provider vouches
// for. Google and Facebook tokens are checked by calling the provider's HTTP
// API through resty. Apple id_tokens are JWTs verified locally against
// Apple's published signing keys.
//
// Transport failures and provider rejections are mapped to the sentinel
// values in errors.go so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-rest-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/social_provider_mock.go -package=mock

// Provider names accepted by /auth/social/{provider}.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
	ProviderApple    = "apple"
)

// SocialProvider verifies provider issued tokens.
type SocialProvider interface {
	// Verify checks token with the provider and returns the identity it
	// belongs to. A token the provider does not accept yields
	// [ErrTokenRejected].
	Verify(ctx context.Context, token string) (models.SocialIdentity, error)
}
