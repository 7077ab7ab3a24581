// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is matched by every *ParseError via errors.Is.
var ErrInvalidQuery = errors.New("invalid query parameters")

// Reason classifies a ParseError.
type Reason string

const (
	UnknownOperator  Reason = "unknown_operator"
	MalformedBetween Reason = "malformed_between"
	EmptyInList      Reason = "empty_in_list"
	InvalidValue     Reason = "invalid_value"
)

// ParseError is returned when a query string cannot be turned into a bounded
// query. It is a client error and never falls back to matching everything.
type ParseError struct {
	Reason Reason
	Key    string
	Value  string
}

func (e *ParseError) Error() string {
	switch e.Reason {
	case UnknownOperator:
		return fmt.Sprintf("unknown operator in %q", e.Key)
	case MalformedBetween:
		return fmt.Sprintf("%q expects exactly two comma-separated values", e.Key)
	case EmptyInList:
		return fmt.Sprintf("%q expects a non-empty comma-separated list", e.Key)
	default:
		return fmt.Sprintf("invalid value %q for %q", e.Value, e.Key)
	}
}

func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidQuery
}
