package transfer

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-rest-api/internal/query"
	"github.com/MKhiriev/go-rest-api/models"
)

// DecodePayload turns a request body into a record of d.
//
// Translatable fields are accepted in three forms: a plain string for
// defaultLang, an object keyed by language code, or one "<field>_<lang>" key
// per language. Many-to-many relations take a list of ids. Unknown and
// read-only keys are ignored. Slugs are left to [FillSlugs].
func DecodePayload(d *models.ResourceDescriptor, body map[string]any, defaultLang string, languages []string) (models.Record, error) {
	rec := models.Record{
		Fields:       make(map[string]any),
		Translations: make(models.Translations),
		Links:        make(map[string][]int64),
	}

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var messages []string
	for _, key := range keys {
		value := body[key]
		if key == d.IDField {
			continue
		}

		if spec, ok := d.Field(key); ok {
			if spec.ReadOnly {
				continue
			}
			if spec.Translatable {
				messages = append(messages, decodeTranslatable(rec.Translations, spec, value, defaultLang, languages)...)
				continue
			}
			converted, err := ConvertJSONValue(spec.Kind, value)
			if err != nil {
				messages = append(messages, fmt.Sprintf("%s: %s", key, kindMessage(spec.Kind)))
				continue
			}
			rec.Fields[key] = converted
			continue
		}

		if field, lang, ok := splitLangKey(d, key, languages); ok {
			s, isString := value.(string)
			if !isString {
				messages = append(messages, fmt.Sprintf("%s: must be a string", key))
				continue
			}
			rec.Translations.Set(lang, field, s)
			continue
		}

		if rel, ok := d.Relation(key); ok && rel.Kind == models.ManyToMany {
			ids, err := decodeIDList(value)
			if err != nil {
				messages = append(messages, fmt.Sprintf("%s: %s", key, err))
				continue
			}
			rec.Links[key] = ids
		}
	}

	if len(messages) > 0 {
		return models.Record{}, &PayloadError{Messages: messages}
	}

	return rec, nil
}

func decodeTranslatable(t models.Translations, spec models.FieldSpec, value any, defaultLang string, languages []string) []string {
	switch v := value.(type) {
	case string:
		t.Set(defaultLang, spec.Name, v)
		return nil
	case map[string]any:
		var messages []string
		langs := make([]string, 0, len(v))
		for lang := range v {
			langs = append(langs, lang)
		}
		slices.Sort(langs)
		for _, lang := range langs {
			if !slices.Contains(languages, lang) {
				messages = append(messages, fmt.Sprintf("%s: unknown language %q", spec.Name, lang))
				continue
			}
			s, ok := v[lang].(string)
			if !ok {
				messages = append(messages, fmt.Sprintf("%s.%s: must be a string", spec.Name, lang))
				continue
			}
			t.Set(lang, spec.Name, s)
		}
		return messages
	}
	return []string{fmt.Sprintf("%s: must be a string or an object keyed by language", spec.Name)}
}

func splitLangKey(d *models.ResourceDescriptor, key string, languages []string) (string, string, bool) {
	i := strings.LastIndex(key, "_")
	if i <= 0 {
		return "", "", false
	}
	field, lang := key[:i], key[i+1:]
	if !slices.Contains(languages, lang) {
		return "", "", false
	}
	spec, ok := d.Field(field)
	if !ok || !spec.Translatable || spec.ReadOnly {
		return "", "", false
	}
	return field, lang, true
}

func decodeIDList(value any) ([]int64, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("must be a list of ids")
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := ConvertJSONValue(models.KindInt, item)
		if err != nil || id == nil || id.(int64) < 1 {
			return nil, fmt.Errorf("must be a list of positive ids")
		}
		if !slices.Contains(ids, id.(int64)) {
			ids = append(ids, id.(int64))
		}
	}
	return ids, nil
}

// ConvertJSONValue converts a decoded JSON value to the Go type of kind.
// JSON null stays nil.
func ConvertJSONValue(kind models.FieldKind, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	switch kind {
	case models.KindInt:
		switch v := value.(type) {
		case json.Number:
			return v.Int64()
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("must be an integer")
			}
			return int64(v), nil
		case string:
			return query.ConvertValue(kind, v)
		}
		return nil, fmt.Errorf("must be an integer")

	case models.KindDecimal:
		switch v := value.(type) {
		case json.Number:
			return decimal.NewFromString(v.String())
		case float64:
			return decimal.NewFromFloat(v), nil
		case string:
			return query.ConvertValue(kind, v)
		}
		return nil, fmt.Errorf("must be a number")

	case models.KindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case json.Number:
			return strconv.ParseBool(v.String())
		case float64:
			return v != 0, nil
		case string:
			return query.ConvertValue(kind, v)
		}
		return nil, fmt.Errorf("must be a boolean")

	case models.KindTime:
		if v, ok := value.(string); ok {
			return query.ConvertValue(kind, v)
		}
		return nil, fmt.Errorf("must be a date")
	}

	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	}
	return nil, fmt.Errorf("must be a string")
}

func kindMessage(kind models.FieldKind) string {
	switch kind {
	case models.KindInt:
		return "must be an integer"
	case models.KindDecimal:
		return "must be a number"
	case models.KindBool:
		return "must be a boolean"
	case models.KindTime:
		return "must be a date"
	}
	return "must be a string"
}

// FillSlugs generates every empty slug of t from its source field in the
// same language. Slugs that are already set are kept.
func FillSlugs(d *models.ResourceDescriptor, t models.Translations) {
	for slugField, source := range d.Slugs {
		for lang := range t {
			if slug, ok := t.Get(lang, slugField); ok && slug != "" {
				continue
			}
			if src, ok := t.Get(lang, source); ok && src != "" {
				t.Set(lang, slugField, Slugify(src))
			}
		}
	}
}
