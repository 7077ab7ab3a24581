package service

import (
	"errors"
	"strings"
)

// Error kinds of every service operation. The HTTP layer maps each one to
// a status code; callers match them with [errors.Is].
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrPersistence  = errors.New("persistence error")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrClientInput  = errors.New("invalid client input")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrUnknownResource     = errors.New("unknown resource")
	ErrUnknownProvider     = errors.New("unknown social login provider")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountDisabled     = errors.New("account is disabled")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrProtectedRecord     = errors.New("record is protected and cannot be deleted")
	ErrTokenCreationFailed = errors.New("token creation failed")
)

// ValidationErrors lists every rule a payload broke. It matches
// [ErrValidation].
type ValidationErrors struct {
	Messages []string
}

func (e *ValidationErrors) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}
