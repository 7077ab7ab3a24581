// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks decoded request values against the rules a
// resource descriptor declares and against the tags of the auth request
// models.
//
// Rules are go-playground/validator tags. Two shop specific tags are
// registered on top of the built-in ones:
//   - catalogname: no <>;=#{} characters, as product and category names
//     end up in HTML and URLs;
//   - linkrewrite: ASCII letters, digits and dashes only.
//
// Every failure is reported, not only the first one, as a *FieldErrors.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
//
//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
