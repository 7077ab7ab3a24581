// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package resource declares the descriptors of every resource the API
// exposes. Descriptors are built once at startup and shared read-only by
// the query engine, the services, the store and the handlers.
package resource

import (
	"slices"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/models"
)

// Resource names, used as route segments.
const (
	Products      = "products"
	Categories    = "categories"
	Manufacturers = "manufacturers"
	Suppliers     = "suppliers"
	CMS           = "cms"
	CMSCategories = "cms_categories"
	Customers     = "customers"
)

// Registry maps resource names to their descriptors.
type Registry struct {
	descriptors map[string]*models.ResourceDescriptor
	names       []string
}

// NewRegistry builds the descriptors of all resources for cfg.
func NewRegistry(cfg config.Resources) *Registry {
	r := &Registry{descriptors: make(map[string]*models.ResourceDescriptor)}

	for _, d := range []*models.ResourceDescriptor{
		productDescriptor(),
		categoryDescriptor(cfg.RootCategoryID, cfg.HomeCategoryID),
		manufacturerDescriptor(),
		supplierDescriptor(),
		cmsDescriptor(),
		cmsCategoryDescriptor(),
		customerDescriptor(),
	} {
		if d.DefaultLimit < 1 {
			d.DefaultLimit = cfg.DefaultPageSize
		}
		r.descriptors[d.Name] = d
		r.names = append(r.names, d.Name)
	}
	slices.Sort(r.names)

	return r
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*models.ResourceDescriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Names returns the registered resource names in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}
