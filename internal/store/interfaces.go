package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-rest-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator maps driver errors to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// RecordRepository stores records of any resource described by a
// [models.ResourceDescriptor]. It also loads the relation projections the
// transfer pipeline embeds.
type RecordRepository interface {
	// List returns one bounded page of ids matching q plus the total count.
	// lang is the language translatable filter and sort fields compare in.
	List(ctx context.Context, d *models.ResourceDescriptor, q models.Query, lang string) (models.ListResult, error)
	Get(ctx context.Context, d *models.ResourceDescriptor, id int64) (models.Record, error)
	// Create inserts rec and returns the new id.
	Create(ctx context.Context, d *models.ResourceDescriptor, rec models.Record) (int64, error)
	// Update stores rec under rec.ID. Translations of rec replace the stored
	// ones; links are only replaced for relations present in rec.Links.
	Update(ctx context.Context, d *models.ResourceDescriptor, rec models.Record) error
	Delete(ctx context.Context, d *models.ResourceDescriptor, id int64) error

	LoadProjection(ctx context.Context, rel models.RelationSpec, id int64, langs []string) (*models.Projection, error)
	LoadProjections(ctx context.Context, rel models.RelationSpec, ownerID int64, langs []string) ([]models.Projection, error)
	LoadImages(ctx context.Context, rel models.RelationSpec, ownerID int64, langs []string, limit int) ([]models.Image, error)
}

// CustomerRepository handles the customer accounts used for authentication.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (models.Customer, error)
}

// Denylist remembers revoked token ids until the token would have expired.
type Denylist interface {
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	Contains(ctx context.Context, jti string) (bool, error)
}
