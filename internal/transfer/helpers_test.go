package transfer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-rest-api/models"
)

var testLanguages = []string{"en", "it", "fr"}

func productDescriptor() *models.ResourceDescriptor {
	return &models.ResourceDescriptor{
		Name:      "products",
		Label:     "Product",
		Table:     "products",
		IDField:   "id",
		IDColumn:  "id_product",
		LangTable: "product_lang",
		Fields: []models.FieldSpec{
			{Name: "id", Column: "id_product", Kind: models.KindInt, ReadOnly: true},
			{Name: "name", Column: "name", Kind: models.KindString, Translatable: true},
			{Name: "link_rewrite", Column: "link_rewrite", Kind: models.KindString, Translatable: true},
			{Name: "reference", Column: "reference", Kind: models.KindString},
			{Name: "price", Column: "price", Kind: models.KindDecimal},
			{Name: "weight", Column: "weight", Kind: models.KindDecimal},
			{Name: "active", Column: "active", Kind: models.KindBool},
			{Name: "id_category_default", Column: "id_category_default", Kind: models.KindInt},
			{Name: "quantity", Column: "quantity", Kind: models.KindInt},
			{Name: "secret_note", Column: "secret_note", Kind: models.KindString},
			{Name: "date_add", Column: "date_add", Kind: models.KindTime, ReadOnly: true},
		},
		Relations: []models.RelationSpec{
			{Name: "category", Kind: models.BelongsTo, Table: "categories", IDColumn: "id_category", ForeignKey: "id_category_default"},
			{Name: "categories", Kind: models.ManyToMany, Table: "categories", IDColumn: "id_category", JoinTable: "category_product", ForeignKey: "id_product", JoinColumn: "id_category"},
			{Name: "images", Kind: models.Images, Table: "images", IDColumn: "id_image", ForeignKey: "id_product"},
		},
		RTODefaults: models.RTOConfig{
			IncludeRelations:    false,
			IncludeImages:       true,
			IncludeTranslations: false,
			IncludeStock:        false,
			MaxImages:           2,
		},
		CoreFields:      []string{"id", "name", "link_rewrite", "reference", "price", "weight", "active", "id_category_default", "secret_note", "date_add"},
		SensitiveFields: []string{"secret_note"},
		PriceFields:     []string{"price"},
		StockField:      "quantity",
		Slugs:           map[string]string{"link_rewrite": "name"},
	}
}

func productRecord() models.Record {
	t := models.Translations{}
	t.Set("en", "name", "Mug")
	t.Set("en", "link_rewrite", "mug")
	t.Set("it", "name", "")
	t.Set("fr", "name", "Tasse")

	return models.Record{
		ID: 5,
		Fields: map[string]any{
			"reference":           "MUG-01",
			"price":               decimal.RequireFromString("1234.5"),
			"weight":              "0.350",
			"active":              int64(1),
			"id_category_default": int64(3),
			"quantity":            int64(12),
			"secret_note":         "supplier pays 3.10",
			"date_add":            time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Translations: t,
	}
}
