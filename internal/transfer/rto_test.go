package transfer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-api/models"
)

func productDTO(images int) *DTO {
	d := productDescriptor()
	rec := productRecord()
	dto := &DTO{
		Descriptor:   d,
		ID:           rec.ID,
		Fields:       rec.Fields,
		Translations: rec.Translations,
		BelongsTo:    map[string]*models.Projection{"category": {ID: 3, Name: "Kitchen", Active: true}},
		Many:         map[string][]models.Projection{"categories": {{ID: 2, Name: "Home"}, {ID: 3, Name: "Kitchen"}}},
	}
	for i := 1; i <= images; i++ {
		dto.Images = append(dto.Images, models.Image{ID: int64(i), Position: i, Cover: i == 1})
	}
	return dto
}

func TestBuildRTO_Defaults(t *testing.T) {
	dto := productDTO(3)
	opts := ResolveOptions(dto.Descriptor, models.View{}, "en", testLanguages, "EUR")

	out := BuildRTO(dto, opts)

	assert.Equal(t, int64(5), out["id"])
	assert.Equal(t, "Mug", out["name"])
	assert.Equal(t, "mug", out["link_rewrite"])
	assert.Equal(t, "MUG-01", out["reference"])
	assert.Equal(t, 0.35, out["weight"])
	assert.Equal(t, true, out["active"])
	assert.Equal(t, int64(3), out["id_category_default"])
	assert.Equal(t, "2026-01-02 03:04:05", out["date_add"])

	price, ok := out["price"].(Price)
	require.True(t, ok)
	assert.Equal(t, 1234.5, price.Base)
	assert.Equal(t, "EUR", price.Currency)

	images, ok := out[KeyImages].([]models.Image)
	require.True(t, ok)
	assert.Len(t, images, 2)

	assert.NotContains(t, out, KeyTranslations)
	assert.NotContains(t, out, "quantity")
	assert.NotContains(t, out, "category")
	assert.NotContains(t, out, "secret_note")
}

func TestBuildRTO_TranslationsRestrictedToRequestedLanguage(t *testing.T) {
	dto := productDTO(0)
	view := models.View{Include: []string{IncludeTranslations}, Languages: []string{"en"}}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	section, ok := out[KeyTranslations].(map[string]map[string]string)
	require.True(t, ok)
	assert.Len(t, section, 1)
	assert.Equal(t, map[string]string{"name": "Mug", "link_rewrite": "mug"}, section["en"])
}

func TestBuildRTO_TranslationsAllLanguages(t *testing.T) {
	dto := productDTO(0)
	view := models.View{Include: []string{IncludeTranslations}}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	section := out[KeyTranslations].(map[string]map[string]string)
	assert.Len(t, section, 3)
	assert.Equal(t, "", section["it"]["name"])
	assert.Equal(t, "Tasse", section["fr"]["name"])
	assert.Equal(t, "", section["fr"]["link_rewrite"])
}

func TestBuildRTO_UnknownLanguagesRenderEmptySection(t *testing.T) {
	dto := productDTO(0)
	view := models.View{Include: []string{IncludeTranslations}, Languages: []string{"xx"}}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	assert.Equal(t, map[string]map[string]string{}, out[KeyTranslations])
}

func TestBuildRTO_LanguageFallback(t *testing.T) {
	dto := productDTO(0)
	view := models.View{Language: "it"}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	assert.Equal(t, "Mug", out["name"])
}

func TestBuildRTO_IncludeAll(t *testing.T) {
	dto := productDTO(1)
	view := models.View{Include: []string{IncludeAll}}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	assert.Equal(t, int64(12), out["quantity"])
	assert.Equal(t, &models.Projection{ID: 3, Name: "Kitchen", Active: true}, out["category"])
	assert.Len(t, out["categories"], 2)
	assert.Contains(t, out, KeyTranslations)
	assert.Contains(t, out, KeyImages)
	assert.NotContains(t, out, "secret_note")
}

func TestBuildRTO_SparseFieldsKeepIdentity(t *testing.T) {
	dto := productDTO(0)
	view := models.View{Fields: []string{"name", "secret_note", "bogus"}}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	assert.Equal(t, int64(5), out["id"])
	assert.Equal(t, "Mug", out["name"])
	assert.NotContains(t, out, "reference")
	assert.NotContains(t, out, "secret_note")
}

func TestBuildRTO_NilBelongsTo(t *testing.T) {
	dto := productDTO(0)
	dto.BelongsTo = map[string]*models.Projection{"category": nil}
	dto.Many = map[string][]models.Projection{}
	view := models.View{Include: []string{"category", "categories"}}

	out := BuildRTO(dto, ResolveOptions(dto.Descriptor, view, "en", testLanguages, "EUR"))

	assert.Contains(t, out, "category")
	assert.Nil(t, out["category"])
	assert.Equal(t, []models.Projection{}, out["categories"])
}

func TestNormalizeBool(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{true, true},
		{false, false},
		{int64(1), true},
		{int64(0), false},
		{1, true},
		{float64(0), false},
		{"1", true},
		{"0", false},
		{" true ", true},
		{"false", false},
		{"yes", false},
		{[]byte("1"), true},
		{nil, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeBool(tt.in), "%#v", tt.in)
	}
}

func TestRenderTime(t *testing.T) {
	assert.Nil(t, renderTime(nil))
	assert.Nil(t, renderTime(""))
	assert.Equal(t, "2026-01-01 00:00:00", renderTime("2026-01-01 00:00:00"))
	assert.Nil(t, renderTime(productRecord().Fields["quantity"]))

	formatted := renderTime(productRecord().Fields["date_add"]).(string)
	assert.True(t, strings.HasPrefix(formatted, "2026-01-02"))
}
