package transfer

import (
	"slices"

	"github.com/MKhiriev/go-rest-api/models"
)

// Section names accepted in include next to relation names.
const (
	IncludeAll          = "all"
	IncludeRelations    = "relations"
	IncludeImages       = "images"
	IncludeTranslations = "translations"
	IncludeStock        = "stock"
)

// Options is the resolved response shape of one request: the descriptor's
// RTO defaults merged with the caller's view.
type Options struct {
	Config models.RTOConfig
	// Relations are the non-image relation slots to embed.
	Relations []string
	// Fields restricts core fields when non-empty.
	Fields []string

	// Language is the language single translatable values render in.
	Language string
	// Languages is the configured language order used for fallback.
	Languages []string
	Currency  string
}

// ResolveOptions merges d's RTO defaults with view.
//
// Include entries naming a relation of d select exactly those relations.
// Section names switch on their section. "all" switches on every section
// and relation. Unknown entries are ignored.
func ResolveOptions(d *models.ResourceDescriptor, view models.View, lang string, languages []string, currency string) Options {
	cfg := d.RTODefaults
	opts := Options{
		Fields:    coreSubset(d, view.Fields),
		Language:  lang,
		Languages: languages,
		Currency:  currency,
	}
	if view.Language != "" && slices.Contains(languages, view.Language) {
		opts.Language = view.Language
	}
	if opts.Language == "" && len(languages) > 0 {
		opts.Language = languages[0]
	}

	var picked []string
	for _, item := range view.Include {
		switch item {
		case IncludeAll:
			cfg.IncludeRelations = true
			cfg.IncludeImages = true
			cfg.IncludeTranslations = true
			cfg.IncludeStock = true
		case IncludeRelations:
			cfg.IncludeRelations = true
		case IncludeImages:
			cfg.IncludeImages = true
		case IncludeTranslations:
			cfg.IncludeTranslations = true
		case IncludeStock:
			cfg.IncludeStock = true
		default:
			if rel, ok := d.Relation(item); ok && rel.Kind != models.Images && !slices.Contains(picked, item) {
				picked = append(picked, item)
			}
		}
	}

	switch {
	case slices.Contains(view.Include, IncludeAll), picked == nil && cfg.IncludeRelations:
		for _, rel := range d.Relations {
			if rel.Kind != models.Images {
				opts.Relations = append(opts.Relations, rel.Name)
			}
		}
	case picked != nil:
		opts.Relations = picked
	}

	if len(view.Languages) > 0 {
		var restrict []string
		for _, l := range view.Languages {
			if slices.Contains(languages, l) && !slices.Contains(restrict, l) {
				restrict = append(restrict, l)
			}
		}
		// an explicit but fully unknown list renders no translations
		if restrict == nil {
			restrict = []string{}
		}
		cfg.Languages = restrict
	}

	opts.Config = cfg
	return opts
}

// LoadRelations returns the relation slots BuildDTO has to resolve for o.
// The result is never nil so that an empty shape loads nothing.
func (o Options) LoadRelations(d *models.ResourceDescriptor) []string {
	names := append([]string{}, o.Relations...)
	if o.Config.IncludeImages {
		for _, rel := range d.Relations {
			if rel.Kind == models.Images {
				names = append(names, rel.Name)
			}
		}
	}
	return names
}

// TranslationLanguages is the language list the translations section covers.
func (o Options) TranslationLanguages() []string {
	if o.Config.Languages != nil {
		return o.Config.Languages
	}
	return o.Languages
}

func coreSubset(d *models.ResourceDescriptor, fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	core := coreFields(d)

	var out []string
	for _, f := range fields {
		if slices.Contains(core, f) && !d.IsSensitive(f) && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	// unknown names only: keep the identity field so the shape stays usable
	if out == nil {
		out = []string{}
	}
	return out
}

func coreFields(d *models.ResourceDescriptor) []string {
	if len(d.CoreFields) > 0 {
		return d.CoreFields
	}
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Name != d.StockField {
			names = append(names, f.Name)
		}
	}
	return names
}
