// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token issues and validates HS256-signed bearer tokens.
//
// A token carries a subject, the standard time claims, the configured issuer
// and audience, a unique id (jti) and arbitrary custom claims. Validation is
// a pure function of the token, the secret and the current time, so a
// [Service] is safe for concurrent use without locking.
package token

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/models"
)

const (
	// MinSecretBytes is the minimal signing secret length (256 bits).
	MinSecretBytes = 32
	// DefaultIssuer and DefaultAudience are used when the configuration
	// leaves them empty.
	DefaultIssuer   = "rest-api"
	DefaultAudience = "rest-api-user"
)

var registeredClaims = []string{"sub", "iss", "aud", "exp", "nbf", "iat", "jti"}

// Config carries the process-wide token parameters.
type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
}

// Service signs and validates tokens with one shared, read-only secret.
type Service struct {
	secret   []byte
	issuer   string
	audience string

	now   func() time.Time
	newID func() string
}

// NewService returns a Service for cfg. The secret is copied and must hold
// at least MinSecretBytes bytes.
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}

	return &Service{
		secret:   append([]byte(nil), cfg.Secret...),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
		newID:    utils.NewID,
	}, nil
}

// Issue signs a token for subject valid for ttl. Custom claims cannot
// override registered ones.
func (s *Service) Issue(subject string, claims map[string]any, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	now := s.now()
	payload := make(jwt.MapClaims, len(claims)+len(registeredClaims))
	maps.Copy(payload, claims)

	payload["sub"] = subject
	payload["iss"] = s.issuer
	payload["aud"] = s.audience
	payload["iat"] = jwt.NewNumericDate(now)
	payload["nbf"] = jwt.NewNumericDate(now)
	payload["exp"] = jwt.NewNumericDate(now.Add(ttl))
	payload["jti"] = s.newID()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSigningToken, err)
	}

	return signed, nil
}

// Validate checks structure, signature, issuer, audience and the time window
// of tokenString. Any failure yields ErrInvalidToken and nothing else.
func (s *Service) Validate(tokenString string) (models.Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithJSONNumber(),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	parsed, err := parser.Parse(tokenString, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Claims{}, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.Claims{}, ErrInvalidToken
	}

	claims, err := toClaims(mapClaims)
	if err != nil || claims.Issuer != s.issuer {
		return models.Claims{}, ErrInvalidToken
	}

	return claims, nil
}

func toClaims(mc jwt.MapClaims) (models.Claims, error) {
	subject, err := mc.GetSubject()
	if err != nil || subject == "" {
		return models.Claims{}, ErrInvalidToken
	}
	issuer, err := mc.GetIssuer()
	if err != nil {
		return models.Claims{}, err
	}
	audience, err := mc.GetAudience()
	if err != nil || len(audience) == 0 {
		return models.Claims{}, ErrInvalidToken
	}

	claims := models.Claims{
		Subject:  subject,
		Issuer:   issuer,
		Audience: audience[0],
		Custom:   make(map[string]any),
	}
	claims.ID, _ = mc["jti"].(string)

	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if nbf, err := mc.GetNotBefore(); err == nil && nbf != nil {
		claims.NotBefore = nbf.Time
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	for key, value := range mc {
		if !slices.Contains(registeredClaims, key) {
			claims.Custom[key] = customValue(value)
		}
	}

	return claims, nil
}

// customValue turns decoded JSON numbers back into int64, or float64 when
// they have a fraction. Arrays and objects keep their decoded shape.
func customValue(value any) any {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		f, _ := v.Float64()
		return f
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = customValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = customValue(item)
		}
		return out
	}
	return value
}
