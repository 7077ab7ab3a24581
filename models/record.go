// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Translations maps a language ISO code to the translated field values of a
// record in that language.
type Translations map[string]map[string]string

// Get returns the value of field in lang and whether it is present.
func (t Translations) Get(lang, field string) (string, bool) {
	values, ok := t[lang]
	if !ok {
		return "", false
	}
	v, ok := values[field]
	return v, ok
}

// Set stores value for field in lang, allocating the language map on demand.
func (t Translations) Set(lang, field, value string) {
	if t[lang] == nil {
		t[lang] = make(map[string]string)
	}
	t[lang][field] = value
}

// Record is a row of a resource as the record store sees it: own field values
// keyed by public field name plus per-language values of translatable fields.
type Record struct {
	ID           int64
	Fields       map[string]any
	Translations Translations
	// Links holds related ids of many-to-many relations to be written.
	Links map[string][]int64
}

// Projection is the minimal embedded view of a related record.
type Projection struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Image is the minimal descriptor of an image owned by a record.
type Image struct {
	ID       int64  `json:"id"`
	Position int    `json:"position"`
	Cover    bool   `json:"cover"`
	Legend   string `json:"legend,omitempty"`
}
