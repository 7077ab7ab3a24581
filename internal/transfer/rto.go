package transfer

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-rest-api/models"
)

// TimeLayout is how time fields are rendered.
const TimeLayout = "2006-01-02 15:04:05"

// Response keys of the optional sections.
const (
	KeyImages       = "images"
	KeyTranslations = "translations"
)

// BuildRTO shapes dto into the response map described by opts.
//
// The identity field is always present. Sensitive fields never are, whatever
// opts says.
func BuildRTO(dto *DTO, opts Options) map[string]any {
	d := dto.Descriptor
	out := make(map[string]any)

	core := coreFields(d)
	if opts.Fields != nil {
		core = opts.Fields
	}
	out[d.IDField] = dto.ID
	for _, name := range core {
		if name == d.IDField {
			continue
		}
		spec, ok := d.Field(name)
		if !ok {
			continue
		}
		out[name] = renderField(dto, spec, opts)
	}

	if opts.Config.IncludeStock && d.StockField != "" {
		if spec, ok := d.Field(d.StockField); ok {
			out[d.StockField] = renderField(dto, spec, opts)
		}
	}

	for _, name := range opts.Relations {
		rel, ok := d.Relation(name)
		if !ok {
			continue
		}
		switch rel.Kind {
		case models.BelongsTo:
			out[name] = dto.BelongsTo[name]
		case models.ManyToMany:
			items := dto.Many[name]
			if items == nil {
				items = []models.Projection{}
			}
			out[name] = items
		}
	}

	if opts.Config.IncludeImages && hasImages(d) {
		images := dto.Images
		if images == nil {
			images = []models.Image{}
		}
		if limit := opts.Config.MaxImages; limit > 0 && len(images) > limit {
			images = images[:limit]
		}
		out[KeyImages] = images
	}

	if opts.Config.IncludeTranslations {
		if fields := d.TranslatableFields(); len(fields) > 0 {
			out[KeyTranslations] = translationSection(dto.Translations, fields, opts.TranslationLanguages())
		}
	}

	for _, name := range d.SensitiveFields {
		delete(out, name)
	}

	return out
}

func renderField(dto *DTO, spec models.FieldSpec, opts Options) any {
	if spec.Translatable {
		return ResolveTranslation(dto.Translations, spec.Name, opts.Language, opts.Languages)
	}

	v := dto.Fields[spec.Name]
	switch spec.Kind {
	case models.KindBool:
		return normalizeBool(v)
	case models.KindDecimal:
		amount := toDecimal(v)
		if slices.Contains(dto.Descriptor.PriceFields, spec.Name) {
			return FormatPrice(amount, opts.Currency, opts.Language)
		}
		return amount.InexactFloat64()
	case models.KindInt:
		return toInt(v)
	case models.KindTime:
		return renderTime(v)
	}

	if v == nil {
		return ""
	}
	return v
}

func translationSection(t models.Translations, fields, languages []string) map[string]map[string]string {
	section := make(map[string]map[string]string, len(languages))
	for _, lang := range languages {
		values := make(map[string]string, len(fields))
		for _, f := range fields {
			values[f], _ = t.Get(lang, f)
		}
		section[lang] = values
	}
	return section
}

func hasImages(d *models.ResourceDescriptor) bool {
	return slices.ContainsFunc(d.Relations, func(r models.RelationSpec) bool {
		return r.Kind == models.Images
	})
}

// normalizeBool maps the 0/1, "0"/"1" and "true"/"false" forms stores use
// to a real boolean.
func normalizeBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case int:
		return b != 0
	case float64:
		return b != 0
	case []byte:
		return normalizeBool(string(b))
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	}
	return false
}

func toDecimal(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case int64:
		return decimal.NewFromInt(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case json.Number:
		d, _ := decimal.NewFromString(n.String())
		return d
	case []byte:
		d, _ := decimal.NewFromString(string(n))
		return d
	case string:
		d, _ := decimal.NewFromString(n)
		return d
	}
	return decimal.Zero
}

func toInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func renderTime(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return nil
		}
		return t.UTC().Format(TimeLayout)
	case string:
		if t == "" {
			return nil
		}
		return t
	}
	return nil
}
