package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

type googleTokenInfo struct {
	Audience      string `json:"aud"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

type googleProvider struct {
	client   *utils.HTTPClient
	clientID string
	logger   *logger.Logger
}

// NewGoogleProvider verifies Google id_tokens with the tokeninfo endpoint
// under baseURL. Tokens issued for another client id are rejected.
func NewGoogleProvider(baseURL, clientID string, timeout time.Duration, logger *logger.Logger) SocialProvider {
	return &googleProvider{
		client:   utils.NewHTTPClient(strings.TrimRight(baseURL, "/"), timeout),
		clientID: clientID,
		logger:   logger,
	}
}

func (g *googleProvider) Verify(ctx context.Context, token string) (models.SocialIdentity, error) {
	log := logger.FromContext(ctx)

	if g.clientID == "" {
		return models.SocialIdentity{}, ErrProviderNotConfigured
	}

	var info googleTokenInfo
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", token).
		SetResult(&info).
		Get("/tokeninfo")
	if err != nil {
		log.Err(err).Str("func", "*googleProvider.Verify").Msg("tokeninfo request failed")
		return models.SocialIdentity{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SocialIdentity{}, err
	}

	if info.Audience != g.clientID {
		return models.SocialIdentity{}, fmt.Errorf("%w: audience mismatch", ErrTokenRejected)
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return models.SocialIdentity{}, ErrNoEmail
	}

	return models.SocialIdentity{
		Provider:   ProviderGoogle,
		ProviderID: info.Subject,
		Email:      info.Email,
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
	}, nil
}
