package query

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-rest-api/models"
)

var errUnsupportedKind = errors.New("unsupported field kind")

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ConvertValue converts a raw string to the Go value matching kind. It is
// shared with payload decoding so query filters and writes agree on types.
func ConvertValue(kind models.FieldKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch kind {
	case models.KindString:
		return raw, nil
	case models.KindInt:
		return strconv.ParseInt(raw, 10, 64)
	case models.KindDecimal:
		return decimal.NewFromString(raw)
	case models.KindBool:
		return strconv.ParseBool(raw)
	case models.KindTime:
		var lastErr error
		for _, layout := range timeLayouts {
			t, err := time.Parse(layout, raw)
			if err == nil {
				return t, nil
			}
			lastErr = err
		}
		return nil, lastErr
	}

	return nil, errUnsupportedKind
}
