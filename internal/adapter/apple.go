package adapter

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

// AppleIssuer is the "iss" claim of every Apple id_token.
const AppleIssuer = "https://appleid.apple.com"

type appleKey struct {
	KeyType string `json:"kty"`
	KeyID   string `json:"kid"`
	N       string `json:"n"`
	E       string `json:"e"`
}

type appleKeySet struct {
	Keys []appleKey `json:"keys"`
}

type appleProvider struct {
	client   *utils.HTTPClient
	clientID string

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey

	logger *logger.Logger
}

// NewAppleProvider verifies Sign in with Apple id_tokens. Signing keys are
// fetched from baseURL/auth/keys on first use and again whenever a token
// names an unknown key id.
func NewAppleProvider(baseURL, clientID string, timeout time.Duration, logger *logger.Logger) SocialProvider {
	return &appleProvider{
		client:   utils.NewHTTPClient(strings.TrimRight(baseURL, "/"), timeout),
		clientID: clientID,
		keys:     make(map[string]*rsa.PublicKey),
		logger:   logger,
	}
}

func (a *appleProvider) Verify(ctx context.Context, token string) (models.SocialIdentity, error) {
	if a.clientID == "" {
		return models.SocialIdentity{}, ErrProviderNotConfigured
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		return a.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(AppleIssuer),
		jwt.WithAudience(a.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, ErrProviderUnavailable) {
			return models.SocialIdentity{}, err
		}
		return models.SocialIdentity{}, fmt.Errorf("%w: %w", ErrTokenRejected, err)
	}

	email, _ := claims["email"].(string)
	if email == "" || !appleEmailVerified(claims["email_verified"]) {
		return models.SocialIdentity{}, ErrNoEmail
	}
	subject, _ := claims.GetSubject()

	return models.SocialIdentity{
		Provider:   ProviderApple,
		ProviderID: subject,
		Email:      email,
	}, nil
}

// Apple sends email_verified as a boolean or as the string "true".
func appleEmailVerified(v any) bool {
	switch verified := v.(type) {
	case bool:
		return verified
	case string:
		return verified == "true"
	}
	return false
}

func (a *appleProvider) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	a.mu.RLock()
	key, ok := a.keys[kid]
	a.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := a.refreshKeys(ctx); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()
	if key, ok = a.keys[kid]; !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

func (a *appleProvider) refreshKeys(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var set appleKeySet
	resp, err := a.client.R().
		SetContext(ctx).
		SetResult(&set).
		Get("/auth/keys")
	if err != nil {
		log.Err(err).Str("func", "*appleProvider.refreshKeys").Msg("keys request failed")
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: http %d", ErrProviderUnavailable, resp.StatusCode())
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.KeyType != "RSA" {
			continue
		}
		pub, err := rsaPublicKey(k.N, k.E)
		if err != nil {
			log.Err(err).Str("func", "*appleProvider.refreshKeys").Str("kid", k.KeyID).Msg("skipping malformed key")
			continue
		}
		keys[k.KeyID] = pub
	}

	a.mu.Lock()
	a.keys = keys
	a.mu.Unlock()
	return nil
}

func rsaPublicKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("exponent: %w", err)
	}
	exponent := new(big.Int).SetBytes(eBytes)
	if !exponent.IsInt64() || exponent.Int64() < 2 {
		return nil, fmt.Errorf("exponent out of range")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: int(exponent.Int64())}, nil
}
