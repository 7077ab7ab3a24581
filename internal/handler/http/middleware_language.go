package http

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/MKhiriev/go-rest-api/internal/utils"
)

// withLanguage negotiates the response language from Accept-Language
// against the configured languages. The first configured language is used
// when nothing matches.
func (h *Handler) withLanguage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(h.languages) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		lang := h.languages[0]
		if header := r.Header.Get("Accept-Language"); header != "" {
			tags, _, err := language.ParseAcceptLanguage(header)
			if err == nil && len(tags) > 0 {
				if _, index, confidence := h.matcher.Match(tags...); confidence != language.No {
					lang = h.languages[index]
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(utils.WithLanguage(r.Context(), lang)))
	})
}
