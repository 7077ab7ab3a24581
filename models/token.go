// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// TokenType is the value of the "type" claim.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Well-known custom claim names.
const (
	ClaimType       = "type"
	ClaimCustomerID = "customer_id"
	ClaimEmail      = "email"
	ClaimRoles      = "roles"
)

// Claims is the validated content of a bearer token.
//
// Custom holds every non-registered claim in its JSON form: integers come
// back as int64, other numbers as float64, arrays as []any and objects as
// map[string]any.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  string
	ID        string
	IssuedAt  time.Time
	NotBefore time.Time
	ExpiresAt time.Time

	Custom map[string]any
}

// Type returns the token kind carried in the "type" claim.
func (c Claims) Type() TokenType {
	t, _ := c.Custom[ClaimType].(string)
	return TokenType(t)
}

// CustomerID returns the "customer_id" claim when it holds an integer.
func (c Claims) CustomerID() (int64, bool) {
	switch v := c.Custom[ClaimCustomerID].(type) {
	case float64:
		return int64(v), v == float64(int64(v))
	case int64:
		return v, true
	case int:
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	}
	return 0, false
}

// TokenPair is the body returned by every credential exchange.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
