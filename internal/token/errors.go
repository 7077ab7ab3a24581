// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import "errors"

var (
	// ErrInvalidToken is the only error Validate returns. Malformed input,
	// a bad signature, a wrong issuer or audience and expiry are reported
	// identically.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWeakSecret is returned when the signing secret is shorter than
	// MinSecretBytes.
	ErrWeakSecret = errors.New("token signing secret is too short")

	// ErrInvalidTTL is returned by Issue for a non-positive lifetime.
	ErrInvalidTTL = errors.New("token ttl must be positive")

	// ErrEmptySubject is returned by Issue when no subject is given.
	ErrEmptySubject = errors.New("token subject is empty")

	// ErrSigningToken wraps failures of the signing step.
	ErrSigningToken = errors.New("error signing token")
)
