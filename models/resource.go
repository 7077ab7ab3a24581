// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// FieldKind is the storage type of a resource field. Query values and request
// payload values are converted to it before they reach the store.
type FieldKind int

const (
	KindString FieldKind = iota
	KindInt
	KindDecimal
	KindBool
	KindTime
)

// FieldSpec describes one own field of a resource.
type FieldSpec struct {
	// Name is the public name used in query strings, payloads and responses.
	Name string
	// Column is the storage column. Translatable fields live in the
	// descriptor's LangTable under the same column name.
	Column string
	Kind   FieldKind

	Translatable bool
	// ReadOnly fields are rendered but never written from a payload.
	ReadOnly bool
	// Rules is a validator tag applied to the field value (e.g. "gte=0").
	Rules string
}

// RelationKind selects how a relation slot is loaded and embedded.
type RelationKind int

const (
	// BelongsTo embeds a single minimal projection referenced by ForeignKey.
	BelongsTo RelationKind = iota
	// ManyToMany embeds a list of minimal projections through JoinTable.
	ManyToMany
	// Images embeds a list of image descriptors owned by the record.
	Images
)

// RelationSpec is a relation slot of a resource.
type RelationSpec struct {
	Name string
	Kind RelationKind

	// Table, IDColumn, NameColumn and ActiveColumn locate the related record.
	// ActiveColumn may be empty when the related table has no active flag.
	Table        string
	IDColumn     string
	NameColumn   string
	ActiveColumn string
	// NameLangTable is set when the related name is translatable.
	NameLangTable string

	// ForeignKey is the owner field holding the related id (BelongsTo) or the
	// owner column in JoinTable / the images table (ManyToMany, Images).
	ForeignKey string
	JoinTable  string
	JoinColumn string
}

// RTOConfig holds the switches of a response shape.
type RTOConfig struct {
	IncludeRelations    bool
	IncludeImages       bool
	IncludeTranslations bool
	IncludeStock        bool
	MaxImages           int
	// Languages restricts the rendered translations. Empty means all
	// configured languages.
	Languages []string
}

// ResourceDescriptor is the static metadata of a resource type. Descriptors
// are built once at startup and never mutated afterwards.
type ResourceDescriptor struct {
	// Name is the route segment, e.g. "products".
	Name string
	// Label is used in messages, e.g. "Product".
	Label string

	Table     string
	IDField   string
	IDColumn  string
	LangTable string

	Fields    []FieldSpec
	Relations []RelationSpec

	SortableFields   []string
	DefaultSort      string
	SearchableFields []string
	FilterableFields []string
	DefaultLimit     int

	RTODefaults     RTOConfig
	CoreFields      []string
	SensitiveFields []string
	PriceFields     []string
	StockField      string

	RequiredOnCreate []string
	ProtectedIDs     []int64
	// Slugs maps a slug field to the field it is generated from when absent.
	Slugs map[string]string

	// CreatedField and UpdatedField are read-only time fields the service
	// stamps on writes. Either may be empty.
	CreatedField string
	UpdatedField string
	// PasswordField holds a secret that is hashed before it is stored.
	PasswordField string

	// PrivateReads makes list and single reads require an access token.
	PrivateReads bool
}

// Field returns the spec of the named field.
func (d *ResourceDescriptor) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Relation returns the named relation slot.
func (d *ResourceDescriptor) Relation(name string) (RelationSpec, bool) {
	for _, r := range d.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return RelationSpec{}, false
}

func (d *ResourceDescriptor) IsSortable(field string) bool {
	return slices.Contains(d.SortableFields, field)
}

func (d *ResourceDescriptor) IsFilterable(field string) bool {
	return slices.Contains(d.FilterableFields, field)
}

func (d *ResourceDescriptor) IsProtected(id int64) bool {
	return slices.Contains(d.ProtectedIDs, id)
}

func (d *ResourceDescriptor) IsSensitive(field string) bool {
	return slices.Contains(d.SensitiveFields, field)
}

// TranslatableFields returns the names of all translatable fields in
// declaration order.
func (d *ResourceDescriptor) TranslatableFields() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Translatable {
			names = append(names, f.Name)
		}
	}
	return names
}
