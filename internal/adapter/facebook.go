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

type facebookDebugToken struct {
	Data struct {
		AppID   string `json:"app_id"`
		UserID  string `json:"user_id"`
		IsValid bool   `json:"is_valid"`
	} `json:"data"`
}

type facebookProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type facebookProvider struct {
	client    *utils.HTTPClient
	appID     string
	appSecret string
	logger    *logger.Logger
}

// NewFacebookProvider verifies Facebook user access tokens with the Graph
// API under baseURL: debug_token checks that the token is valid for appID,
// then /me returns the profile.
func NewFacebookProvider(baseURL, appID, appSecret string, timeout time.Duration, logger *logger.Logger) SocialProvider {
	return &facebookProvider{
		client:    utils.NewHTTPClient(strings.TrimRight(baseURL, "/"), timeout),
		appID:     appID,
		appSecret: appSecret,
		logger:    logger,
	}
}

func (f *facebookProvider) Verify(ctx context.Context, token string) (models.SocialIdentity, error) {
	log := logger.FromContext(ctx)

	if f.appID == "" || f.appSecret == "" {
		return models.SocialIdentity{}, ErrProviderNotConfigured
	}

	var debug facebookDebugToken
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"input_token":  token,
			"access_token": f.appID + "|" + f.appSecret,
		}).
		SetResult(&debug).
		Get("/debug_token")
	if err != nil {
		log.Err(err).Str("func", "*facebookProvider.Verify").Msg("debug_token request failed")
		return models.SocialIdentity{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SocialIdentity{}, err
	}
	if !debug.Data.IsValid || debug.Data.AppID != f.appID {
		return models.SocialIdentity{}, fmt.Errorf("%w: token is not valid for this app", ErrTokenRejected)
	}

	var profile facebookProfile
	resp, err = f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "id,email,first_name,last_name",
			"access_token": token,
		}).
		SetResult(&profile).
		Get("/me")
	if err != nil {
		log.Err(err).Str("func", "*facebookProvider.Verify").Msg("profile request failed")
		return models.SocialIdentity{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SocialIdentity{}, err
	}
	if profile.Email == "" {
		return models.SocialIdentity{}, ErrNoEmail
	}

	return models.SocialIdentity{
		Provider:   ProviderFacebook,
		ProviderID: profile.ID,
		Email:      profile.Email,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
	}, nil
}
