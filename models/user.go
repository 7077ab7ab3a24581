package models

import "time"

// Customer is a shop account able to authenticate against the API.
// PasswordHash must never leave the server.
type Customer struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstname"`
	LastName     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	Newsletter   bool      `json:"newsletter"`
	CreatedAt    time.Time `json:"date_add"`
	UpdatedAt    time.Time `json:"date_upd"`
}

// TableName returns the name of the database table
// associated with the Customer model.
func (c Customer) TableName() string {
	return "customers"
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstname" validate:"required,personname,max=255"`
	LastName  string `json:"lastname" validate:"required,personname,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// APIKeyRequest is the body of POST /auth/token.
type APIKeyRequest struct {
	APIKey string `json:"api_key" validate:"required"`
}

// SocialLoginRequest is the body of POST /auth/social/{provider}.
type SocialLoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// SocialIdentity is what a social provider vouches for after verifying a
// provider token.
type SocialIdentity struct {
	Provider   string
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
}
