// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package transfer converts stored records into request-scoped DTOs and
// shapes DTOs into the response maps (RTOs) callers negotiate with include,
// fields and language options. It also decodes request payloads back into
// records.
//
// Related records are embedded one level deep only: a DTO holds projections
// and image descriptors of its relations, never their DTOs.
package transfer

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-rest-api/models"
)

// RelationLoader fetches related records for DTO construction. langs is the
// preferred language order used to pick a display name.
//
//go:generate mockgen -source=dto.go -destination=../mock/relation_loader_mock.go -package=mock
type RelationLoader interface {
	LoadProjection(ctx context.Context, rel models.RelationSpec, id int64, langs []string) (*models.Projection, error)
	LoadProjections(ctx context.Context, rel models.RelationSpec, ownerID int64, langs []string) ([]models.Projection, error)
	LoadImages(ctx context.Context, rel models.RelationSpec, ownerID int64, langs []string, limit int) ([]models.Image, error)
}

// DTO is the full internal snapshot of one record with its relations
// resolved.
type DTO struct {
	Descriptor *models.ResourceDescriptor

	ID           int64
	Fields       map[string]any
	Translations models.Translations

	BelongsTo map[string]*models.Projection
	Many      map[string][]models.Projection
	Images    []models.Image
}

// BuildDTO copies rec and resolves the relation slots named in relations.
// A nil relations slice resolves every slot d declares. Belongs-to slots
// whose foreign key is zero or missing stay nil without a lookup.
func BuildDTO(ctx context.Context, d *models.ResourceDescriptor, rec models.Record, loader RelationLoader, relations []string, langs []string) (*DTO, error) {
	dto := &DTO{
		Descriptor:   d,
		ID:           rec.ID,
		Fields:       make(map[string]any, len(rec.Fields)),
		Translations: make(models.Translations, len(rec.Translations)),
		BelongsTo:    make(map[string]*models.Projection),
		Many:         make(map[string][]models.Projection),
	}
	for k, v := range rec.Fields {
		dto.Fields[k] = v
	}
	for lang, values := range rec.Translations {
		for field, value := range values {
			dto.Translations.Set(lang, field, value)
		}
	}

	for _, rel := range d.Relations {
		if relations != nil && !slices.Contains(relations, rel.Name) {
			continue
		}

		switch rel.Kind {
		case models.BelongsTo:
			id := foreignKey(rec.Fields[rel.ForeignKey])
			if id == 0 {
				dto.BelongsTo[rel.Name] = nil
				continue
			}
			p, err := loader.LoadProjection(ctx, rel, id, langs)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrLoadRelation, rel.Name, err)
			}
			dto.BelongsTo[rel.Name] = p

		case models.ManyToMany:
			items, err := loader.LoadProjections(ctx, rel, rec.ID, langs)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrLoadRelation, rel.Name, err)
			}
			if items == nil {
				items = []models.Projection{}
			}
			dto.Many[rel.Name] = items

		case models.Images:
			images, err := loader.LoadImages(ctx, rel, rec.ID, langs, d.RTODefaults.MaxImages)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrLoadRelation, rel.Name, err)
			}
			if images == nil {
				images = []models.Image{}
			}
			dto.Images = images
		}
	}

	return dto, nil
}

func foreignKey(v any) int64 {
	switch id := v.(type) {
	case int64:
		return id
	case int:
		return int64(id)
	case int32:
		return int64(id)
	case float64:
		return int64(id)
	}
	return 0
}
