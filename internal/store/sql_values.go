package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-rest-api/models"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// columnValue normalises a raw driver value to the Go type of kind. pgx
// returns numerics as strings and SQLite stores booleans as integers, so
// every kind accepts a few representations.
func columnValue(kind models.FieldKind, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if b, ok := raw.([]byte); ok {
		raw = string(b)
	}

	switch kind {
	case models.KindInt:
		switch v := raw.(type) {
		case int64:
			return v, nil
		case int32:
			return int64(v), nil
		case int:
			return int64(v), nil
		case float64:
			return int64(v), nil
		case string:
			return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		}

	case models.KindDecimal:
		switch v := raw.(type) {
		case decimal.Decimal:
			return v, nil
		case float64:
			return decimal.NewFromFloat(v), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case string:
			return decimal.NewFromString(strings.TrimSpace(v))
		}

	case models.KindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case int64:
			return v != 0, nil
		case string:
			return strconv.ParseBool(strings.TrimSpace(v))
		}

	case models.KindTime:
		switch v := raw.(type) {
		case time.Time:
			return v.UTC(), nil
		case string:
			for _, layout := range timeLayouts {
				if t, err := time.Parse(layout, v); err == nil {
					return t.UTC(), nil
				}
			}
		}

	case models.KindString:
		switch v := raw.(type) {
		case string:
			return v, nil
		case int64, float64, bool:
			return fmt.Sprint(v), nil
		}
	}

	return nil, fmt.Errorf("%w: cannot convert %T", ErrScanningRow, raw)
}

func int64Value(raw any) (int64, error) {
	v, err := columnValue(models.KindInt, raw)
	if err != nil {
		return 0, err
	}
	id, _ := v.(int64)
	return id, nil
}

func boolValue(raw any) bool {
	v, err := columnValue(models.KindBool, raw)
	if err != nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func stringValue(raw any) string {
	v, err := columnValue(models.KindString, raw)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// scanDest returns n scan targets and the slice they fill.
func scanDest(n int) ([]any, []any) {
	values := make([]any, n)
	ptrs := make([]any, n)
	for i := range values {
		ptrs[i] = &values[i]
	}
	return values, ptrs
}
