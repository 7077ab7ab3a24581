package resource

import (
	"github.com/MKhiriev/go-rest-api/models"
)

// Common columns and rules.
const (
	fieldDateAdd = "date_add"
	fieldDateUpd = "date_upd"
	fieldActive  = "active"

	ruleCatalogName = "catalogname,max=128"
	ruleLinkRewrite = "linkrewrite,max=128"
	ruleUnsignedID  = "gte=0"

	rootCMSCategoryID = 1
)

func idField(column string) models.FieldSpec {
	return models.FieldSpec{Name: "id", Column: column, Kind: models.KindInt, ReadOnly: true}
}

func timestamps() []models.FieldSpec {
	return []models.FieldSpec{
		{Name: fieldDateAdd, Column: fieldDateAdd, Kind: models.KindTime, ReadOnly: true},
		{Name: fieldDateUpd, Column: fieldDateUpd, Kind: models.KindTime, ReadOnly: true},
	}
}

func categoryProjection(name, foreignKey string) models.RelationSpec {
	return models.RelationSpec{
		Name:          name,
		Kind:          models.BelongsTo,
		Table:         "categories",
		IDColumn:      "id_category",
		NameColumn:    "name",
		ActiveColumn:  fieldActive,
		NameLangTable: "category_lang",
		ForeignKey:    foreignKey,
	}
}

func productDescriptor() *models.ResourceDescriptor {
	fields := []models.FieldSpec{
		idField("id_product"),
		{Name: "id_category_default", Column: "id_category_default", Kind: models.KindInt, Rules: ruleUnsignedID},
		{Name: "id_manufacturer", Column: "id_manufacturer", Kind: models.KindInt, Rules: ruleUnsignedID},
		{Name: "id_supplier", Column: "id_supplier", Kind: models.KindInt, Rules: ruleUnsignedID},
		{Name: "reference", Column: "reference", Kind: models.KindString, Rules: "max=64,excludesall=<>;={}"},
		{Name: "ean13", Column: "ean13", Kind: models.KindString, Rules: "omitempty,numeric,max=13"},
		{Name: "price", Column: "price", Kind: models.KindDecimal, Rules: "gte=0"},
		{Name: "wholesale_price", Column: "wholesale_price", Kind: models.KindDecimal, Rules: "gte=0"},
		{Name: "weight", Column: "weight", Kind: models.KindDecimal, Rules: "gte=0"},
		{Name: "quantity", Column: "quantity", Kind: models.KindInt},
		{Name: fieldActive, Column: fieldActive, Kind: models.KindBool},
		{Name: "name", Column: "name", Kind: models.KindString, Translatable: true, Rules: ruleCatalogName},
		{Name: "description", Column: "description", Kind: models.KindString, Translatable: true},
		{Name: "description_short", Column: "description_short", Kind: models.KindString, Translatable: true, Rules: "max=800"},
		{Name: "link_rewrite", Column: "link_rewrite", Kind: models.KindString, Translatable: true, Rules: ruleLinkRewrite},
	}

	return &models.ResourceDescriptor{
		Name:      Products,
		Label:     "Product",
		Table:     "products",
		IDField:   "id",
		IDColumn:  "id_product",
		LangTable: "product_lang",
		Fields:    append(fields, timestamps()...),
		Relations: []models.RelationSpec{
			categoryProjection("category", "id_category_default"),
			{
				Name: "manufacturer", Kind: models.BelongsTo,
				Table: "manufacturers", IDColumn: "id_manufacturer", NameColumn: "name", ActiveColumn: fieldActive,
				ForeignKey: "id_manufacturer",
			},
			{
				Name: "supplier", Kind: models.BelongsTo,
				Table: "suppliers", IDColumn: "id_supplier", NameColumn: "name", ActiveColumn: fieldActive,
				ForeignKey: "id_supplier",
			},
			{
				Name: "categories", Kind: models.ManyToMany,
				Table: "categories", IDColumn: "id_category", NameColumn: "name", ActiveColumn: fieldActive,
				NameLangTable: "category_lang",
				ForeignKey:    "id_product", JoinTable: "category_product", JoinColumn: "id_category",
			},
			{
				Name: "images", Kind: models.Images,
				Table: "images", IDColumn: "id_image", NameColumn: "legend", NameLangTable: "image_lang",
				ForeignKey: "id_product",
			},
		},

		SortableFields:   []string{"id", "name", "reference", "price", "quantity", fieldActive, fieldDateAdd, fieldDateUpd},
		DefaultSort:      "id",
		SearchableFields: []string{"name", "reference", "description_short"},
		FilterableFields: []string{
			"id", "id_category_default", "id_manufacturer", "id_supplier", "reference", "ean13",
			"price", "weight", "quantity", fieldActive, "name", "link_rewrite", fieldDateAdd, fieldDateUpd,
		},

		RTODefaults: models.RTOConfig{
			IncludeRelations:    true,
			IncludeImages:       true,
			IncludeTranslations: true,
			IncludeStock:        true,
			MaxImages:           10,
		},
		PriceFields: []string{"price", "wholesale_price"},
		StockField:  "quantity",

		RequiredOnCreate: []string{"name"},
		Slugs:            map[string]string{"link_rewrite": "name"},
		CreatedField:     fieldDateAdd,
		UpdatedField:     fieldDateUpd,
	}
}

func categoryDescriptor(rootID, homeID int64) *models.ResourceDescriptor {
	fields := []models.FieldSpec{
		idField("id_category"),
		{Name: "id_parent", Column: "id_parent", Kind: models.KindInt, Rules: ruleUnsignedID},
		{Name: "position", Column: "position", Kind: models.KindInt, Rules: "gte=0"},
		{Name: fieldActive, Column: fieldActive, Kind: models.KindBool},
		{Name: "name", Column: "name", Kind: models.KindString, Translatable: true, Rules: ruleCatalogName},
		{Name: "description", Column: "description", Kind: models.KindString, Translatable: true},
		{Name: "link_rewrite", Column: "link_rewrite", Kind: models.KindString, Translatable: true, Rules: ruleLinkRewrite},
	}

	var protected []int64
	for _, id := range []int64{rootID, homeID} {
		if id > 0 {
			protected = append(protected, id)
		}
	}

	return &models.ResourceDescriptor{
		Name:      Categories,
		Label:     "Category",
		Table:     "categories",
		IDField:   "id",
		IDColumn:  "id_category",
		LangTable: "category_lang",
		Fields:    append(fields, timestamps()...),
		Relations: []models.RelationSpec{
			categoryProjection("parent", "id_parent"),
		},

		SortableFields:   []string{"id", "name", "position", fieldActive, fieldDateAdd},
		DefaultSort:      "position",
		SearchableFields: []string{"name", "description"},
		FilterableFields: []string{"id", "id_parent", "position", fieldActive, "name", "link_rewrite", fieldDateAdd, fieldDateUpd},

		RTODefaults: models.RTOConfig{
			IncludeRelations:    true,
			IncludeTranslations: true,
		},

		RequiredOnCreate: []string{"name"},
		ProtectedIDs:     protected,
		Slugs:            map[string]string{"link_rewrite": "name"},
		CreatedField:     fieldDateAdd,
		UpdatedField:     fieldDateUpd,
	}
}

// brandDescriptor describes manufacturers and suppliers, which share a shape.
func brandDescriptor(name, label, table, idColumn string) *models.ResourceDescriptor {
	fields := []models.FieldSpec{
		idField(idColumn),
		{Name: "name", Column: "name", Kind: models.KindString, Rules: ruleCatalogName},
		{Name: fieldActive, Column: fieldActive, Kind: models.KindBool},
	}

	return &models.ResourceDescriptor{
		Name:     name,
		Label:    label,
		Table:    table,
		IDField:  "id",
		IDColumn: idColumn,
		Fields:   append(fields, timestamps()...),

		SortableFields:   []string{"id", "name", fieldActive, fieldDateAdd},
		DefaultSort:      "name",
		SearchableFields: []string{"name"},
		FilterableFields: []string{"id", "name", fieldActive, fieldDateAdd, fieldDateUpd},

		RequiredOnCreate: []string{"name"},
		CreatedField:     fieldDateAdd,
		UpdatedField:     fieldDateUpd,
	}
}

func manufacturerDescriptor() *models.ResourceDescriptor {
	return brandDescriptor(Manufacturers, "Manufacturer", "manufacturers", "id_manufacturer")
}

func supplierDescriptor() *models.ResourceDescriptor {
	return brandDescriptor(Suppliers, "Supplier", "suppliers", "id_supplier")
}

func cmsCategoryProjection(name, foreignKey string) models.RelationSpec {
	return models.RelationSpec{
		Name:          name,
		Kind:          models.BelongsTo,
		Table:         "cms_category",
		IDColumn:      "id_cms_category",
		NameColumn:    "name",
		ActiveColumn:  fieldActive,
		NameLangTable: "cms_category_lang",
		ForeignKey:    foreignKey,
	}
}

func cmsDescriptor() *models.ResourceDescriptor {
	return &models.ResourceDescriptor{
		Name:      CMS,
		Label:     "CMS page",
		Table:     "cms",
		IDField:   "id",
		IDColumn:  "id_cms",
		LangTable: "cms_lang",
		Fields: []models.FieldSpec{
			idField("id_cms"),
			{Name: "id_cms_category", Column: "id_cms_category", Kind: models.KindInt, Rules: "gt=0"},
			{Name: "position", Column: "position", Kind: models.KindInt, Rules: "gte=0"},
			{Name: fieldActive, Column: fieldActive, Kind: models.KindBool},
			{Name: "meta_title", Column: "meta_title", Kind: models.KindString, Translatable: true, Rules: ruleCatalogName},
			{Name: "meta_description", Column: "meta_description", Kind: models.KindString, Translatable: true, Rules: "max=512"},
			{Name: "content", Column: "content", Kind: models.KindString, Translatable: true},
			{Name: "link_rewrite", Column: "link_rewrite", Kind: models.KindString, Translatable: true, Rules: ruleLinkRewrite},
		},

		Relations: []models.RelationSpec{
			cmsCategoryProjection("category", "id_cms_category"),
		},

		SortableFields:   []string{"id", "position", "meta_title", fieldActive},
		DefaultSort:      "position",
		SearchableFields: []string{"meta_title", "content"},
		FilterableFields: []string{"id", "id_cms_category", "position", fieldActive, "meta_title", "link_rewrite"},

		RTODefaults: models.RTOConfig{IncludeRelations: true, IncludeTranslations: true},

		RequiredOnCreate: []string{"meta_title"},
		Slugs:            map[string]string{"link_rewrite": "meta_title"},
	}
}

// cmsCategoryDescriptor describes the tree CMS pages are filed in. The root
// category holds every page created without one and cannot be deleted.
func cmsCategoryDescriptor() *models.ResourceDescriptor {
	fields := []models.FieldSpec{
		idField("id_cms_category"),
		{Name: "id_parent", Column: "id_parent", Kind: models.KindInt, Rules: ruleUnsignedID},
		{Name: "position", Column: "position", Kind: models.KindInt, Rules: "gte=0"},
		{Name: fieldActive, Column: fieldActive, Kind: models.KindBool},
		{Name: "name", Column: "name", Kind: models.KindString, Translatable: true, Rules: ruleCatalogName},
		{Name: "description", Column: "description", Kind: models.KindString, Translatable: true},
		{Name: "link_rewrite", Column: "link_rewrite", Kind: models.KindString, Translatable: true, Rules: ruleLinkRewrite},
	}

	return &models.ResourceDescriptor{
		Name:      CMSCategories,
		Label:     "CMS category",
		Table:     "cms_category",
		IDField:   "id",
		IDColumn:  "id_cms_category",
		LangTable: "cms_category_lang",
		Fields:    append(fields, timestamps()...),
		Relations: []models.RelationSpec{
			cmsCategoryProjection("parent", "id_parent"),
		},

		SortableFields:   []string{"id", "name", "position", fieldActive, fieldDateAdd},
		DefaultSort:      "position",
		SearchableFields: []string{"name", "description"},
		FilterableFields: []string{"id", "id_parent", "position", fieldActive, "name", "link_rewrite", fieldDateAdd, fieldDateUpd},

		RTODefaults: models.RTOConfig{
			IncludeRelations:    true,
			IncludeTranslations: true,
		},

		RequiredOnCreate: []string{"name"},
		ProtectedIDs:     []int64{rootCMSCategoryID},
		Slugs:            map[string]string{"link_rewrite": "name"},
		CreatedField:     fieldDateAdd,
		UpdatedField:     fieldDateUpd,
	}
}

func customerDescriptor() *models.ResourceDescriptor {
	fields := []models.FieldSpec{
		idField("id_customer"),
		{Name: "firstname", Column: "firstname", Kind: models.KindString, Rules: "personname,max=255"},
		{Name: "lastname", Column: "lastname", Kind: models.KindString, Rules: "personname,max=255"},
		{Name: "email", Column: "email", Kind: models.KindString, Rules: "email,max=255"},
		{Name: "passwd", Column: "passwd", Kind: models.KindString, Rules: "min=8,max=72"},
		{Name: fieldActive, Column: fieldActive, Kind: models.KindBool},
		{Name: "newsletter", Column: "newsletter", Kind: models.KindBool},
	}

	return &models.ResourceDescriptor{
		Name:     Customers,
		Label:    "Customer",
		Table:    "customers",
		IDField:  "id",
		IDColumn: "id_customer",
		Fields:   append(fields, timestamps()...),

		SortableFields:   []string{"id", "lastname", "email", fieldDateAdd},
		DefaultSort:      "id",
		SearchableFields: []string{"firstname", "lastname", "email"},
		FilterableFields: []string{"id", "email", fieldActive, "newsletter", fieldDateAdd, fieldDateUpd},

		SensitiveFields:  []string{"passwd"},
		RequiredOnCreate: []string{"firstname", "lastname", "email", "passwd"},
		PasswordField:    "passwd",
		CreatedField:     fieldDateAdd,
		UpdatedField:     fieldDateUpd,
		PrivateReads:     true,
	}
}
