package service

import (
	"context"
	"net/url"
	"time"

	"github.com/MKhiriev/go-rest-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ResourceService is the CRUD contract of one registered resource. Every
// method returns response shaped records (RTOs) and fails with one of the
// error kinds in errors.go.
type ResourceService interface {
	Descriptor() *models.ResourceDescriptor

	// List parses params with the filter engine and returns one page.
	List(ctx context.Context, params url.Values) (models.ListResponse, error)
	Get(ctx context.Context, id int64, view models.View) (map[string]any, error)
	Create(ctx context.Context, body map[string]any, view models.View) (map[string]any, error)
	// Update keeps every field and every translation the body omits.
	Update(ctx context.Context, id int64, body map[string]any, view models.View) (map[string]any, error)
	Delete(ctx context.Context, id int64) error
}

// AuthService exchanges credentials for tokens and checks bearer tokens.
type AuthService interface {
	ExchangeAPIKey(ctx context.Context, req models.APIKeyRequest) (models.TokenPair, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.TokenPair, error)
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)
	Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error)
	SocialLogin(ctx context.Context, provider string, req models.SocialLoginRequest) (models.TokenPair, error)
	// Logout revokes the token claims were taken from until it expires.
	Logout(ctx context.Context, claims models.Claims) error
	// Authenticate accepts only valid, unrevoked access tokens.
	Authenticate(ctx context.Context, token string) (models.Claims, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

// TokenIssuer signs and validates bearer tokens.
type TokenIssuer interface {
	Issue(subject string, claims map[string]any, ttl time.Duration) (string, error)
	Validate(token string) (models.Claims, error)
}

// Observer receives the business metrics of the services.
type Observer interface {
	IncrementResourceOperation(resource, operation, outcome string)
	IncrementTokensIssued(tokenType, grant string)
	IncrementAuthFailures(reason string)
	IncrementTokensRevoked()
}

type nopObserver struct{}

func (nopObserver) IncrementResourceOperation(string, string, string) {}
func (nopObserver) IncrementTokensIssued(string, string)              {}
func (nopObserver) IncrementAuthFailures(string)                      {}
func (nopObserver) IncrementTokensRevoked()                           {}
