package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-rest-api/models"
)

func TestResolveOptions(t *testing.T) {
	d := productDescriptor()

	tests := []struct {
		name          string
		view          models.View
		wantRelations []string
		wantLoad      []string
		wantConfig    func(t *testing.T, cfg models.RTOConfig)
	}{
		{
			name:     "defaults",
			view:     models.View{},
			wantLoad: []string{"images"},
			wantConfig: func(t *testing.T, cfg models.RTOConfig) {
				assert.False(t, cfg.IncludeRelations)
				assert.True(t, cfg.IncludeImages)
				assert.False(t, cfg.IncludeTranslations)
				assert.Nil(t, cfg.Languages)
			},
		},
		{
			name:          "explicit relation",
			view:          models.View{Include: []string{"category"}},
			wantRelations: []string{"category"},
			wantLoad:      []string{"category", "images"},
		},
		{
			name:          "duplicate and unknown entries",
			view:          models.View{Include: []string{"categories", "nope", "categories"}},
			wantRelations: []string{"categories"},
			wantLoad:      []string{"categories", "images"},
		},
		{
			name:          "relations section",
			view:          models.View{Include: []string{IncludeRelations}},
			wantRelations: []string{"category", "categories"},
			wantLoad:      []string{"category", "categories", "images"},
		},
		{
			name:          "relations section with explicit relation",
			view:          models.View{Include: []string{IncludeRelations, "category"}},
			wantRelations: []string{"category"},
			wantLoad:      []string{"category", "images"},
		},
		{
			name:          "all",
			view:          models.View{Include: []string{IncludeAll}},
			wantRelations: []string{"category", "categories"},
			wantLoad:      []string{"category", "categories", "images"},
			wantConfig: func(t *testing.T, cfg models.RTOConfig) {
				assert.True(t, cfg.IncludeRelations)
				assert.True(t, cfg.IncludeImages)
				assert.True(t, cfg.IncludeTranslations)
				assert.True(t, cfg.IncludeStock)
			},
		},
		{
			name:     "sections",
			view:     models.View{Include: []string{IncludeTranslations, IncludeStock}},
			wantLoad: []string{"images"},
			wantConfig: func(t *testing.T, cfg models.RTOConfig) {
				assert.True(t, cfg.IncludeTranslations)
				assert.True(t, cfg.IncludeStock)
				assert.False(t, cfg.IncludeRelations)
			},
		},
		{
			name:     "languages restricted",
			view:     models.View{Languages: []string{"fr", "de", "fr"}},
			wantLoad: []string{"images"},
			wantConfig: func(t *testing.T, cfg models.RTOConfig) {
				assert.Equal(t, []string{"fr"}, cfg.Languages)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ResolveOptions(d, tt.view, "en", testLanguages, "EUR")

			assert.Equal(t, tt.wantRelations, opts.Relations)
			assert.Equal(t, tt.wantLoad, opts.LoadRelations(d))
			if tt.wantConfig != nil {
				tt.wantConfig(t, opts.Config)
			}
		})
	}
}

func TestResolveOptions_DoesNotMutateDescriptor(t *testing.T) {
	d := productDescriptor()

	_ = ResolveOptions(d, models.View{Include: []string{IncludeAll}, Languages: []string{"en"}}, "en", testLanguages, "EUR")

	assert.False(t, d.RTODefaults.IncludeTranslations)
	assert.Nil(t, d.RTODefaults.Languages)
}

func TestResolveOptions_Language(t *testing.T) {
	d := productDescriptor()

	tests := []struct {
		name string
		view models.View
		lang string
		want string
	}{
		{name: "request language", lang: "fr", want: "fr"},
		{name: "view override", view: models.View{Language: "it"}, lang: "fr", want: "it"},
		{name: "unknown override ignored", view: models.View{Language: "de"}, lang: "fr", want: "fr"},
		{name: "default language", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ResolveOptions(d, tt.view, tt.lang, testLanguages, "EUR")
			assert.Equal(t, tt.want, opts.Language)
		})
	}
}

func TestOptions_TranslationLanguages(t *testing.T) {
	d := productDescriptor()

	all := ResolveOptions(d, models.View{}, "en", testLanguages, "EUR")
	assert.Equal(t, testLanguages, all.TranslationLanguages())

	none := ResolveOptions(d, models.View{Languages: []string{"xx"}}, "en", testLanguages, "EUR")
	assert.Equal(t, []string{}, none.TranslationLanguages())
}

func TestCoreFields_WithoutExplicitList(t *testing.T) {
	d := productDescriptor()
	d.CoreFields = nil

	fields := coreFields(d)

	assert.Contains(t, fields, "name")
	assert.NotContains(t, fields, "quantity")
}
