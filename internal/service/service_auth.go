package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-rest-api/internal/adapter"
	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/store"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/internal/validators"
	"github.com/MKhiriev/go-rest-api/models"
)

const (
	bearerTokenType  = "Bearer"
	apiSubjectPrefix = "api_user_"
	apiAccessRole    = "api_access"
	customerRole     = "customer"
)

// Grant names used as the grant label of token metrics.
const (
	GrantAPIKey   = "api_key"
	GrantRegister = "register"
	GrantPassword = "password"
	GrantRefresh  = "refresh"
	GrantSocial   = "social"
)

// authService exchanges API keys, customer credentials, refresh tokens and
// social provider tokens for bearer tokens. Revoked token ids are kept in
// the denylist until the token would have expired anyway.
type authService struct {
	customers store.CustomerRepository
	denylist  store.Denylist
	tokens    TokenIssuer
	validator validators.Validator
	providers map[string]adapter.SocialProvider
	observer  Observer

	apiKey        string
	hashKey       string
	accessTTL     time.Duration
	rememberMeTTL time.Duration
	refreshTTL    time.Duration
	bcryptCost    int
	now           func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService. observer may be nil.
func NewAuthService(
	customers store.CustomerRepository,
	denylist store.Denylist,
	tokens TokenIssuer,
	validator validators.Validator,
	providers map[string]adapter.SocialProvider,
	observer Observer,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	if observer == nil {
		observer = nopObserver{}
	}

	return &authService{
		customers:     customers,
		denylist:      denylist,
		tokens:        tokens,
		validator:     validator,
		providers:     providers,
		observer:      observer,
		apiKey:        cfg.APIKey,
		hashKey:       cfg.HashKey,
		accessTTL:     cfg.AccessTokenDuration,
		rememberMeTTL: cfg.RememberMeDuration,
		refreshTTL:    cfg.RefreshTokenDuration,
		bcryptCost:    bcrypt.DefaultCost,
		now:           time.Now,
		logger:        logger,
	}
}

// ExchangeAPIKey issues an access token to a holder of the configured API
// key. No refresh token is issued.
func (a *authService) ExchangeAPIKey(ctx context.Context, req models.APIKeyRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		return models.TokenPair{}, err
	}
	if !utils.EqualSecrets(req.APIKey, a.apiKey) {
		log.Warn().Str("func", "*authService.ExchangeAPIKey").Msg("invalid api key")
		a.observer.IncrementAuthFailures("api_key")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidCredentials)
	}

	subject := apiSubjectPrefix + utils.HashString(req.APIKey, a.hashKey)[:16]
	access, err := a.issue(subject, map[string]any{
		models.ClaimType:  string(models.AccessToken),
		models.ClaimRoles: []string{apiAccessRole},
	}, a.accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	a.observer.IncrementTokensIssued(string(models.AccessToken), GrantAPIKey)

	return models.TokenPair{
		AccessToken: access,
		TokenType:   bearerTokenType,
		ExpiresIn:   int64(a.accessTTL.Seconds()),
	}, nil
}

func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		return models.TokenPair{}, err
	}

	customer, err := a.createCustomer(ctx, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return models.TokenPair{}, err
	}
	log.Info().Str("func", "*authService.Register").Int64("customer_id", customer.ID).Msg("customer registered")

	return a.pair(customer, a.accessTTL, GrantRegister)
}

func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := a.validate(ctx, req); err != nil {
		return models.TokenPair{}, err
	}

	customer, err := a.customers.FindCustomerByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrCustomerNotFound) {
		a.observer.IncrementAuthFailures("credentials")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidCredentials)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("error finding customer")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("func", "*authService.Login").Int64("customer_id", customer.ID).Msg("wrong password")
		a.observer.IncrementAuthFailures("credentials")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidCredentials)
	}
	if !customer.Active {
		a.observer.IncrementAuthFailures("inactive")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrAccountDisabled)
	}

	ttl := a.accessTTL
	if req.RememberMe {
		ttl = a.rememberMeTTL
	}

	return a.pair(customer, ttl, GrantPassword)
}

// Refresh exchanges a valid, unrevoked refresh token for a new access
// token.
func (a *authService) Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error) {
	if err := a.validate(ctx, req); err != nil {
		return models.TokenPair{}, err
	}

	claims, err := a.verify(ctx, req.RefreshToken, models.RefreshToken)
	if err != nil {
		return models.TokenPair{}, err
	}

	custom := map[string]any{models.ClaimType: string(models.AccessToken)}
	for _, key := range []string{models.ClaimCustomerID, models.ClaimEmail, models.ClaimRoles} {
		if v, ok := claims.Custom[key]; ok {
			custom[key] = v
		}
	}

	access, err := a.issue(claims.Subject, custom, a.accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}
	a.observer.IncrementTokensIssued(string(models.AccessToken), GrantRefresh)

	return models.TokenPair{
		AccessToken: access,
		TokenType:   bearerTokenType,
		ExpiresIn:   int64(a.accessTTL.Seconds()),
	}, nil
}

// SocialLogin verifies a provider token and logs in the customer owning the
// verified email, creating one on first login.
func (a *authService) SocialLogin(ctx context.Context, provider string, req models.SocialLoginRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	p, ok := a.providers[provider]
	if !ok {
		return models.TokenPair{}, fmt.Errorf("%w: %w: %s", ErrClientInput, ErrUnknownProvider, provider)
	}
	if err := a.validate(ctx, req); err != nil {
		return models.TokenPair{}, err
	}

	identity, err := p.Verify(ctx, req.Token)
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.SocialLogin").Str("provider", provider).Msg("provider token rejected")
		a.observer.IncrementAuthFailures("social")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	customer, err := a.customers.FindCustomerByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, store.ErrCustomerNotFound):
		password, err := utils.RandomHex(32)
		if err != nil {
			return models.TokenPair{}, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		customer, err = a.createCustomer(ctx, identity.FirstName, identity.LastName, identity.Email, password)
		if err != nil {
			return models.TokenPair{}, err
		}
		log.Info().Str("func", "*authService.SocialLogin").Str("provider", provider).Int64("customer_id", customer.ID).Msg("customer created from social identity")
	case err != nil:
		log.Err(err).Str("func", "*authService.SocialLogin").Msg("error finding customer")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	case !customer.Active:
		a.observer.IncrementAuthFailures("inactive")
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrAccountDisabled)
	}

	return a.pair(customer, a.accessTTL, GrantSocial)
}

// Logout revokes the token claims belong to until its expiry.
func (a *authService) Logout(ctx context.Context, claims models.Claims) error {
	log := logger.FromContext(ctx)

	if claims.ID == "" {
		return fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	}
	if err := a.denylist.Add(ctx, claims.ID, claims.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*authService.Logout").Msg("error revoking token")
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	a.observer.IncrementTokensRevoked()
	log.Info().Str("func", "*authService.Logout").Str("subject", claims.Subject).Msg("token revoked")

	return nil
}

func (a *authService) Authenticate(ctx context.Context, token string) (models.Claims, error) {
	return a.verify(ctx, token, models.AccessToken)
}

// verify validates token, checks its type and that it was not revoked.
func (a *authService) verify(ctx context.Context, token string, want models.TokenType) (models.Claims, error) {
	log := logger.FromContext(ctx)

	claims, err := a.tokens.Validate(token)
	if err != nil {
		a.observer.IncrementAuthFailures("invalid_token")
		return models.Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	}
	if claims.Type() != want {
		log.Debug().Str("func", "*authService.verify").Str("type", string(claims.Type())).Msg("unexpected token type")
		a.observer.IncrementAuthFailures("token_type")
		return models.Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	}

	revoked, err := a.denylist.Contains(ctx, claims.ID)
	if err != nil {
		log.Err(err).Str("func", "*authService.verify").Msg("error checking token denylist")
		return models.Claims{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if revoked {
		a.observer.IncrementAuthFailures("revoked")
		return models.Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidToken)
	}

	return claims, nil
}

func (a *authService) createCustomer(ctx context.Context, firstName, lastName, email, password string) (models.Customer, error) {
	log := logger.FromContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	now := a.now().UTC()
	customer, err := a.customers.CreateCustomer(ctx, models.Customer{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		return models.Customer{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.createCustomer").Msg("error creating customer")
		return models.Customer{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return customer, nil
}

// pair issues the access and refresh token of a customer.
func (a *authService) pair(customer models.Customer, accessTTL time.Duration, grant string) (models.TokenPair, error) {
	subject := strconv.FormatInt(customer.ID, 10)

	access, err := a.issue(subject, map[string]any{
		models.ClaimType:       string(models.AccessToken),
		models.ClaimCustomerID: customer.ID,
		models.ClaimEmail:      customer.Email,
		models.ClaimRoles:      []string{customerRole},
	}, accessTTL)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := a.issue(subject, map[string]any{
		models.ClaimType:       string(models.RefreshToken),
		models.ClaimCustomerID: customer.ID,
		models.ClaimEmail:      customer.Email,
		models.ClaimRoles:      []string{customerRole},
	}, a.refreshTTL)
	if err != nil {
		return models.TokenPair{}, err
	}

	a.observer.IncrementTokensIssued(string(models.AccessToken), grant)
	a.observer.IncrementTokensIssued(string(models.RefreshToken), grant)

	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    bearerTokenType,
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

func (a *authService) issue(subject string, claims map[string]any, ttl time.Duration) (string, error) {
	token, err := a.tokens.Issue(subject, claims, ttl)
	if err != nil {
		a.logger.Err(err).Str("func", "*authService.issue").Msg("error issuing token")
		return "", fmt.Errorf("%w: %w: %w", ErrPersistence, ErrTokenCreationFailed, err)
	}
	return token, nil
}

func (a *authService) validate(ctx context.Context, req any) error {
	err := a.validator.Validate(ctx, req)
	if err == nil {
		return nil
	}

	var fieldErrs *validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return &ValidationErrors{Messages: fieldErrs.Messages}
	}
	return fmt.Errorf("%w: %w", ErrClientInput, err)
}
