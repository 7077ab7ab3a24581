package transfer

import "github.com/MKhiriev/go-rest-api/models"

// ResolveTranslation returns field in lang. When that value is empty or
// absent the first non-empty value in languages order is used, so the
// result never depends on map iteration.
func ResolveTranslation(t models.Translations, field, lang string, languages []string) string {
	if v, ok := t.Get(lang, field); ok && v != "" {
		return v
	}
	for _, l := range languages {
		if v, ok := t.Get(l, field); ok && v != "" {
			return v
		}
	}
	return ""
}
