// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package query turns untrusted HTTP query parameters into a bounded,
// structured list query.
//
// The output of [Engine.Parse] is data only: field names are public names
// checked against the resource descriptor and values are converted to the
// field's kind. Building SQL from it is the store's job and always uses bound
// parameters.
package query

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-rest-api/models"
)

const (
	// MaxPageSize is the upper bound of limit when the engine is built with
	// a non-positive maximum.
	MaxPageSize = 200
	// DefaultPageSize is used when neither the request nor the descriptor
	// provide a usable limit.
	DefaultPageSize = 20

	operatorSeparator = "__"
)

// Reserved query keys. They are never parsed as field filters.
const (
	KeyPage      = "page"
	KeyOffset    = "offset"
	KeyLimit     = "limit"
	KeyOrderBy   = "order_by"
	KeyOrderWay  = "order_way"
	KeyInclude   = "include"
	KeyFields    = "fields"
	KeySearch    = "search"
	KeyLanguage  = "language"
	KeyLanguages = "languages"
)

var reservedKeys = []string{
	KeyPage, KeyOffset, KeyLimit, KeyOrderBy, KeyOrderWay,
	KeyInclude, KeyFields, KeySearch, KeyLanguage, KeyLanguages,
}

// Engine parses list query parameters. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	maxLimit int
}

// NewEngine returns an Engine clamping limits to maxLimit, or to
// [MaxPageSize] when maxLimit is not positive.
func NewEngine(maxLimit int) *Engine {
	if maxLimit < 1 {
		maxLimit = MaxPageSize
	}
	return &Engine{maxLimit: maxLimit}
}

// Parse builds a models.Query for resource d from params.
//
// Filters on fields d does not declare filterable are dropped. Operator and
// value problems yield a *ParseError.
func (e *Engine) Parse(params url.Values, d *models.ResourceDescriptor) (models.Query, error) {
	q := models.Query{
		Pagination: e.pagination(params, d),
		Sort:       sortSpec(params, d),
		Search:     searchConditions(params.Get(KeySearch), d),
		View:       ParseView(params),
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		if !slices.Contains(reservedKeys, key) {
			keys = append(keys, key)
		}
	}
	// map order is random, filters must not be
	slices.Sort(keys)

	for _, key := range keys {
		conds, err := parseFilter(key, params[key], d)
		if err != nil {
			return models.Query{}, err
		}
		q.Filters = append(q.Filters, conds...)
	}

	return q, nil
}

// ParseView extracts the response shaping options from params.
func ParseView(params url.Values) models.View {
	return models.View{
		Include:   splitList(params.Get(KeyInclude), true),
		Fields:    splitList(params.Get(KeyFields), false),
		Language:  strings.ToLower(strings.TrimSpace(params.Get(KeyLanguage))),
		Languages: splitList(params.Get(KeyLanguages), true),
	}
}

func (e *Engine) pagination(params url.Values, d *models.ResourceDescriptor) models.Pagination {
	limit, err := strconv.Atoi(params.Get(KeyLimit))
	if err != nil || limit < 1 {
		limit = d.DefaultLimit
		if limit < 1 {
			limit = DefaultPageSize
		}
	}
	limit = min(limit, e.maxLimit)

	page, err := strconv.Atoi(params.Get(KeyPage))
	if err != nil {
		page = 1
		if offset, offErr := strconv.Atoi(params.Get(KeyOffset)); offErr == nil {
			page = max(offset, 0)/limit + 1
		}
	}
	page = max(page, 1)
	// keeps (page-1)*limit inside int
	page = min(page, math.MaxInt/limit)

	return models.Pagination{Page: page, Limit: limit}
}

func sortSpec(params url.Values, d *models.ResourceDescriptor) models.SortSpec {
	field := params.Get(KeyOrderBy)
	if !d.IsSortable(field) {
		field = d.DefaultSort
	}

	direction := models.Asc
	if strings.EqualFold(strings.TrimSpace(params.Get(KeyOrderWay)), string(models.Desc)) {
		direction = models.Desc
	}

	return models.SortSpec{Field: field, Direction: direction}
}

func searchConditions(term string, d *models.ResourceDescriptor) []models.FilterCondition {
	term = strings.TrimSpace(term)
	if term == "" || len(d.SearchableFields) == 0 {
		return nil
	}

	conds := make([]models.FilterCondition, 0, len(d.SearchableFields))
	for _, field := range d.SearchableFields {
		conds = append(conds, models.FilterCondition{
			Field:    field,
			Operator: models.OpLike,
			Value:    containsPattern(term),
		})
	}
	return conds
}

func parseFilter(key string, values []string, d *models.ResourceDescriptor) ([]models.FilterCondition, error) {
	field, op := key, models.OpEq
	if i := strings.LastIndex(key, operatorSeparator); i >= 0 {
		field, op = key[:i], models.Operator(key[i+len(operatorSeparator):])
	}
	if !op.Valid() {
		return nil, &ParseError{Reason: UnknownOperator, Key: key}
	}

	spec, ok := d.Field(field)
	if !ok || !d.IsFilterable(field) {
		return nil, nil
	}

	if op == models.OpIn || op == models.OpNotIn {
		var items []string
		for _, v := range values {
			items = append(items, splitList(v, false)...)
		}
		if len(items) == 0 {
			return nil, &ParseError{Reason: EmptyInList, Key: key}
		}
		converted := make([]any, 0, len(items))
		for _, item := range items {
			v, err := ConvertValue(spec.Kind, item)
			if err != nil {
				return nil, &ParseError{Reason: InvalidValue, Key: key, Value: item}
			}
			converted = append(converted, v)
		}
		return []models.FilterCondition{{Field: field, Operator: op, Value: converted}}, nil
	}

	conds := make([]models.FilterCondition, 0, len(values))
	for _, raw := range values {
		value, err := conditionValue(key, op, spec, raw)
		if err != nil {
			return nil, err
		}
		conds = append(conds, models.FilterCondition{Field: field, Operator: op, Value: value})
	}
	return conds, nil
}

func conditionValue(key string, op models.Operator, spec models.FieldSpec, raw string) (any, error) {
	switch op {
	case models.OpBetween:
		parts := strings.Split(raw, ",")
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, &ParseError{Reason: MalformedBetween, Key: key, Value: raw}
		}
		var bounds [2]any
		for i, part := range parts {
			v, err := ConvertValue(spec.Kind, part)
			if err != nil {
				return nil, &ParseError{Reason: InvalidValue, Key: key, Value: part}
			}
			bounds[i] = v
		}
		return bounds, nil

	case models.OpIsNull:
		if strings.TrimSpace(raw) == "" {
			return true, nil
		}
		isNull, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, &ParseError{Reason: InvalidValue, Key: key, Value: raw}
		}
		return isNull, nil

	case models.OpLike, models.OpILike:
		if spec.Kind != models.KindString {
			return nil, &ParseError{Reason: InvalidValue, Key: key, Value: raw}
		}
		return containsPattern(strings.TrimSpace(raw)), nil
	}

	v, err := ConvertValue(spec.Kind, raw)
	if err != nil {
		return nil, &ParseError{Reason: InvalidValue, Key: key, Value: raw}
	}
	return v, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern matches term anywhere in a column. Wildcards in term are
// escaped with a backslash, the escape character the store declares.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func splitList(raw string, lower bool) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if lower {
			item = strings.ToLower(item)
		}
		items = append(items, item)
	}
	return items
}
