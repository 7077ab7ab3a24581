package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-rest-api/internal/adapter"
	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/mock"
	"github.com/MKhiriev/go-rest-api/internal/store"
	"github.com/MKhiriev/go-rest-api/internal/token"
	"github.com/MKhiriev/go-rest-api/internal/validators"
	"github.com/MKhiriev/go-rest-api/models"
)

type authFixture struct {
	svc       *authService
	tokens    *token.Service
	customers *mock.MockCustomerRepository
	google    *mock.MockSocialProvider
	denylist  *store.MemoryDenylist
}

func newAuthFixture(t *testing.T) authFixture {
	ctrl := gomock.NewController(t)
	customers := mock.NewMockCustomerRepository(ctrl)
	google := mock.NewMockSocialProvider(ctrl)
	denylist := store.NewMemoryDenylist()

	tokens, err := token.NewService(token.Config{
		Secret: []byte(strings.Repeat("k", token.MinSecretBytes)),
		Issuer: "shop",
	})
	require.NoError(t, err)

	cfg := config.App{
		APIKey:               "the-api-key",
		HashKey:              "hash-key",
		AccessTokenDuration:  time.Hour,
		RememberMeDuration:   7 * 24 * time.Hour,
		RefreshTokenDuration: 30 * 24 * time.Hour,
	}
	providers := map[string]adapter.SocialProvider{adapter.ProviderGoogle: google}

	svc := NewAuthService(customers, denylist, tokens, validators.NewRecordValidator(), providers, nil, cfg, logger.Nop()).(*authService)
	svc.bcryptCost = bcrypt.MinCost

	return authFixture{svc: svc, tokens: tokens, customers: customers, google: google, denylist: denylist}
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_ExchangeAPIKey(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.ExchangeAPIKey(ctx, models.APIKeyRequest{APIKey: "the-api-key"})
	require.NoError(t, err)
	assert.Empty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := f.svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(claims.Subject, "api_user_"))
	assert.Len(t, claims.Subject, len("api_user_")+16)
	assert.Equal(t, []any{"api_access"}, claims.Custom[models.ClaimRoles])

	_, err = f.svc.ExchangeAPIKey(ctx, models.APIKeyRequest{APIKey: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.ExchangeAPIKey(ctx, models.APIKeyRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	f.customers.EXPECT().
		CreateCustomer(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c models.Customer) (models.Customer, error) {
			assert.Equal(t, "ada@example.com", c.Email)
			assert.True(t, c.Active)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("correct-horse")))
			c.ID = 42
			return c, nil
		})

	pair, err := f.svc.Register(ctx, models.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := f.svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	id, ok := claims.CustomerID()
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	// a refresh token is not an access token
	_, err = f.svc.Authenticate(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Register_Errors(t *testing.T) {
	t.Run("email taken", func(t *testing.T) {
		f := newAuthFixture(t)
		f.customers.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(models.Customer{}, store.ErrEmailAlreadyExists)

		_, err := f.svc.Register(context.Background(), models.RegisterRequest{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "correct-horse",
		})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("invalid body", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.svc.Register(context.Background(), models.RegisterRequest{Email: "nope", Password: "short"})
		require.ErrorIs(t, err, ErrValidation)

		var verrs *ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.GreaterOrEqual(t, len(verrs.Messages), 3)
	})
}

func TestAuthService_Login(t *testing.T) {
	customer := models.Customer{ID: 7, Email: "bob@example.com", Active: true}

	tests := []struct {
		name    string
		req     models.LoginRequest
		setup   func(f authFixture)
		wantErr error
		wantTTL int64
	}{
		{
			name: "ok",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "pa55word"},
			setup: func(f authFixture) {
				c := customer
				c.PasswordHash = hashed(t, "pa55word")
				f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "bob@example.com").Return(c, nil)
			},
			wantTTL: 3600,
		},
		{
			name: "remember me",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "pa55word", RememberMe: true},
			setup: func(f authFixture) {
				c := customer
				c.PasswordHash = hashed(t, "pa55word")
				f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "bob@example.com").Return(c, nil)
			},
			wantTTL: 7 * 24 * 3600,
		},
		{
			name: "wrong password",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "nope"},
			setup: func(f authFixture) {
				c := customer
				c.PasswordHash = hashed(t, "pa55word")
				f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "bob@example.com").Return(c, nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name: "unknown email",
			req:  models.LoginRequest{Email: "who@example.com", Password: "pa55word"},
			setup: func(f authFixture) {
				f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "who@example.com").Return(models.Customer{}, store.ErrCustomerNotFound)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name: "disabled account",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "pa55word"},
			setup: func(f authFixture) {
				c := customer
				c.Active = false
				c.PasswordHash = hashed(t, "pa55word")
				f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "bob@example.com").Return(c, nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name: "store failure",
			req:  models.LoginRequest{Email: "bob@example.com", Password: "pa55word"},
			setup: func(f authFixture) {
				f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), gomock.Any()).Return(models.Customer{}, store.ErrExecutingQuery)
			},
			wantErr: ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			tt.setup(f)

			pair, err := f.svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTTL, pair.ExpiresIn)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.pair(models.Customer{ID: 5, Email: "eve@example.com"}, time.Hour, GrantPassword)
	require.NoError(t, err)

	refreshed, err := f.svc.Refresh(ctx, models.RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.Empty(t, refreshed.RefreshToken)

	claims, err := f.svc.Authenticate(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "5", claims.Subject)
	assert.Equal(t, "eve@example.com", claims.Custom[models.ClaimEmail])

	// an access token cannot be used as a refresh token
	_, err = f.svc.Refresh(ctx, models.RefreshRequest{RefreshToken: pair.AccessToken})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// a revoked refresh token is rejected
	refreshClaims, err := f.tokens.Validate(pair.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, f.denylist.Add(ctx, refreshClaims.ID, refreshClaims.ExpiresAt))
	_, err = f.svc.Refresh(ctx, models.RefreshRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_SocialLogin(t *testing.T) {
	identity := models.SocialIdentity{
		Provider:   adapter.ProviderGoogle,
		ProviderID: "g-1",
		Email:      "new@example.com",
		FirstName:  "New",
		LastName:   "Person",
	}

	t.Run("creates customer", func(t *testing.T) {
		f := newAuthFixture(t)
		f.google.EXPECT().Verify(gomock.Any(), "provider-token").Return(identity, nil)
		f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "new@example.com").Return(models.Customer{}, store.ErrCustomerNotFound)
		f.customers.EXPECT().
			CreateCustomer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c models.Customer) (models.Customer, error) {
				assert.Equal(t, "New", c.FirstName)
				assert.NotEmpty(t, c.PasswordHash)
				c.ID = 77
				return c, nil
			})

		pair, err := f.svc.SocialLogin(context.Background(), adapter.ProviderGoogle, models.SocialLoginRequest{Token: "provider-token"})
		require.NoError(t, err)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("existing customer", func(t *testing.T) {
		f := newAuthFixture(t)
		f.google.EXPECT().Verify(gomock.Any(), "provider-token").Return(identity, nil)
		f.customers.EXPECT().FindCustomerByEmail(gomock.Any(), "new@example.com").Return(models.Customer{ID: 3, Email: "new@example.com", Active: true}, nil)

		pair, err := f.svc.SocialLogin(context.Background(), adapter.ProviderGoogle, models.SocialLoginRequest{Token: "provider-token"})
		require.NoError(t, err)

		claims, err := f.tokens.Validate(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "3", claims.Subject)
	})

	t.Run("unknown provider", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.svc.SocialLogin(context.Background(), "myspace", models.SocialLoginRequest{Token: "x"})
		assert.ErrorIs(t, err, ErrClientInput)
		assert.ErrorIs(t, err, ErrUnknownProvider)
	})

	t.Run("rejected token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.google.EXPECT().Verify(gomock.Any(), "bad").Return(models.SocialIdentity{}, adapter.ErrTokenRejected)

		_, err := f.svc.SocialLogin(context.Background(), adapter.ProviderGoogle, models.SocialLoginRequest{Token: "bad"})
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.ErrorIs(t, err, adapter.ErrTokenRejected)
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	pair, err := f.svc.ExchangeAPIKey(ctx, models.APIKeyRequest{APIKey: "the-api-key"})
	require.NoError(t, err)

	claims, err := f.svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims))
	_, err = f.svc.Authenticate(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, f.svc.Logout(ctx, models.Claims{}), ErrUnauthorized)
}

func TestAuthService_DenylistFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	denylist := mock.NewMockDenylist(ctrl)
	tokens := mock.NewMockTokenIssuer(ctrl)
	observer := mock.NewMockObserver(ctrl)

	svc := NewAuthService(nil, denylist, tokens, validators.NewRecordValidator(), nil, observer, config.App{}, logger.Nop())

	claims := models.Claims{ID: "jti-1", Custom: map[string]any{models.ClaimType: "access"}}
	tokens.EXPECT().Validate("raw").Return(claims, nil)
	denylist.EXPECT().Contains(gomock.Any(), "jti-1").Return(false, errors.Join(store.ErrDenylist, errors.New("connection refused")))

	_, err := svc.Authenticate(context.Background(), "raw")
	assert.ErrorIs(t, err, ErrPersistence)

	tokens.EXPECT().Validate("forged").Return(models.Claims{}, token.ErrInvalidToken)
	observer.EXPECT().IncrementAuthFailures("invalid_token")

	_, err = svc.Authenticate(context.Background(), "forged")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, token.ErrInvalidToken)
}
