// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Operator is a comparison applied by a FilterCondition.
type Operator string

const (
	OpEq      Operator = "eq"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpLike    Operator = "like"
	OpILike   Operator = "ilike"
	OpNot     Operator = "not"
	OpIn      Operator = "in"
	OpNotIn   Operator = "not_in"
	OpBetween Operator = "between"
	OpIsNull  Operator = "is_null"
)

// Operators lists every supported operator token in declaration order.
var Operators = []Operator{OpEq, OpGt, OpGte, OpLt, OpLte, OpLike, OpILike, OpNot, OpIn, OpNotIn, OpBetween, OpIsNull}

// Valid reports whether o is one of the supported operators.
func (o Operator) Valid() bool {
	for _, op := range Operators {
		if op == o {
			return true
		}
	}
	return false
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// FilterCondition is one predicate of a list query.
//
// Value holds a single converted scalar for comparison operators, a []any for
// in/not_in, a [2]any for between and a bool (true meaning IS NULL) for
// is_null. Field is the public field name, never a column.
type FilterCondition struct {
	Field    string
	Operator Operator
	Value    any
}

// SortSpec selects the ordering of a list query.
type SortSpec struct {
	Field     string
	Direction Direction
}

// Pagination is a bounded page window.
type Pagination struct {
	Page  int
	Limit int
}

// Offset returns the number of rows skipped before the page starts.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func (p Pagination) TotalPages(total int64) int64 {
	if p.Limit < 1 || total <= 0 {
		return 0
	}
	limit := int64(p.Limit)
	return (total + limit - 1) / limit
}

// Query is the structured, storage-independent description of a list request.
// Filters are combined with AND; Search conditions form a single OR group.
type Query struct {
	Filters    []FilterCondition
	Search     []FilterCondition
	Sort       SortSpec
	Pagination Pagination

	View
}

// View carries the response shaping options of a request. Single-record
// reads use it without the rest of Query.
type View struct {
	// Include is the raw list of requested relations and sections.
	Include []string
	// Fields restricts the rendered core fields when non-empty.
	Fields []string
	// Language selects the language single translatable values render in.
	// Empty means the request's negotiated language.
	Language string
	// Languages restricts the rendered translations section.
	Languages []string
}

// ListResult is what a record store returns for a list query.
type ListResult struct {
	IDs   []int64
	Total int64
}
