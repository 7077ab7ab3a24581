package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/internal/query"
	"github.com/MKhiriev/go-rest-api/internal/store"
	"github.com/MKhiriev/go-rest-api/internal/transfer"
	"github.com/MKhiriev/go-rest-api/internal/utils"
	"github.com/MKhiriev/go-rest-api/internal/validators"
	"github.com/MKhiriev/go-rest-api/models"
)

// Operation names used as the operation label of resource metrics.
const (
	OperationList   = "list"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// resourceService orchestrates the CRUD flow of one resource: query
// parsing, payload decoding, validation, persistence and response shaping.
type resourceService struct {
	descriptor *models.ResourceDescriptor

	repository store.RecordRepository
	validator  validators.Validator
	engine     *query.Engine
	observer   Observer

	languages  []string
	currency   string
	bcryptCost int
	now        func() time.Time

	logger *logger.Logger
}

// NewResourceService builds the service of the resource d describes.
// observer may be nil.
func NewResourceService(
	d *models.ResourceDescriptor,
	repository store.RecordRepository,
	validator validators.Validator,
	observer Observer,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) ResourceService {
	if observer == nil {
		observer = nopObserver{}
	}

	return &resourceService{
		descriptor: d,
		repository: repository,
		validator:  validator,
		engine:     query.NewEngine(cfg.Resources.MaxPageSize),
		observer:   observer,
		languages:  cfg.App.Languages,
		currency:   cfg.App.Currency,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *resourceService) Descriptor() *models.ResourceDescriptor {
	return s.descriptor
}

func (s *resourceService) List(ctx context.Context, params url.Values) (models.ListResponse, error) {
	log := logger.FromContext(ctx)

	q, err := s.engine.Parse(params, s.descriptor)
	if err != nil {
		log.Debug().Err(err).Str("func", "*resourceService.List").Str("resource", s.descriptor.Name).Msg("invalid list query")
		return models.ListResponse{}, s.done(OperationList, fmt.Errorf("%w: %w", ErrClientInput, err))
	}

	opts := s.options(ctx, q.View)
	result, err := s.repository.List(ctx, s.descriptor, q, opts.Language)
	if err != nil {
		return models.ListResponse{}, s.done(OperationList, s.storeError(err))
	}

	data := make([]map[string]any, 0, len(result.IDs))
	for _, id := range result.IDs {
		rec, err := s.repository.Get(ctx, s.descriptor, id)
		if errors.Is(err, store.ErrRecordNotFound) {
			// deleted between the id page and the read
			continue
		}
		if err != nil {
			return models.ListResponse{}, s.done(OperationList, s.storeError(err))
		}

		rto, err := s.shape(ctx, rec, opts)
		if err != nil {
			return models.ListResponse{}, s.done(OperationList, err)
		}
		data = append(data, rto)
	}

	return models.ListResponse{
		Data: data,
		Pagination: models.PaginationInfo{
			TotalItems:   result.Total,
			CurrentPage:  q.Pagination.Page,
			ItemsPerPage: q.Pagination.Limit,
			TotalPages:   q.Pagination.TotalPages(result.Total),
		},
	}, s.done(OperationList, nil)
}

func (s *resourceService) Get(ctx context.Context, id int64, view models.View) (map[string]any, error) {
	rto, err := s.read(ctx, id, s.options(ctx, view))
	return rto, s.done(OperationGet, err)
}

func (s *resourceService) Create(ctx context.Context, body map[string]any, view models.View) (map[string]any, error) {
	log := logger.FromContext(ctx)

	rec, err := s.decode(ctx, body, true)
	if err != nil {
		return nil, s.done(OperationCreate, err)
	}
	if err = s.hashPassword(&rec); err != nil {
		return nil, s.done(OperationCreate, err)
	}

	now := s.now().UTC()
	if s.descriptor.CreatedField != "" {
		rec.Fields[s.descriptor.CreatedField] = now
	}
	if s.descriptor.UpdatedField != "" {
		rec.Fields[s.descriptor.UpdatedField] = now
	}

	id, err := s.repository.Create(ctx, s.descriptor, rec)
	if err != nil {
		return nil, s.done(OperationCreate, s.storeError(err))
	}
	log.Info().Str("func", "*resourceService.Create").Str("resource", s.descriptor.Name).Int64("id", id).Msg("record created")

	rto, err := s.read(ctx, id, s.options(ctx, view))
	return rto, s.done(OperationCreate, err)
}

// Update merges body into the stored record. Own fields absent from body
// keep their value and translations merge per field and per language.
func (s *resourceService) Update(ctx context.Context, id int64, body map[string]any, view models.View) (map[string]any, error) {
	log := logger.FromContext(ctx)

	existing, err := s.repository.Get(ctx, s.descriptor, id)
	if err != nil {
		return nil, s.done(OperationUpdate, s.storeError(err))
	}

	incoming, err := s.decode(ctx, body, false)
	if err != nil {
		return nil, s.done(OperationUpdate, err)
	}
	if err = s.hashPassword(&incoming); err != nil {
		return nil, s.done(OperationUpdate, err)
	}

	rec := models.Record{
		ID:           id,
		Fields:       incoming.Fields,
		Translations: mergeTranslations(existing.Translations, incoming.Translations),
		Links:        incoming.Links,
	}
	// stored slugs win over ones derived from a renamed source field
	transfer.FillSlugs(s.descriptor, rec.Translations)
	if s.descriptor.UpdatedField != "" {
		rec.Fields[s.descriptor.UpdatedField] = s.now().UTC()
	}

	if err = s.repository.Update(ctx, s.descriptor, rec); err != nil {
		return nil, s.done(OperationUpdate, s.storeError(err))
	}
	log.Info().Str("func", "*resourceService.Update").Str("resource", s.descriptor.Name).Int64("id", id).Msg("record updated")

	rto, err := s.read(ctx, id, s.options(ctx, view))
	return rto, s.done(OperationUpdate, err)
}

func (s *resourceService) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	if s.descriptor.IsProtected(id) {
		log.Warn().Str("func", "*resourceService.Delete").Str("resource", s.descriptor.Name).Int64("id", id).Msg("attempt to delete protected record")
		return s.done(OperationDelete, fmt.Errorf("%w: %w", ErrForbidden, ErrProtectedRecord))
	}

	if err := s.repository.Delete(ctx, s.descriptor, id); err != nil {
		return s.done(OperationDelete, s.storeError(err))
	}
	log.Info().Str("func", "*resourceService.Delete").Str("resource", s.descriptor.Name).Int64("id", id).Msg("record deleted")

	return s.done(OperationDelete, nil)
}

func (s *resourceService) read(ctx context.Context, id int64, opts transfer.Options) (map[string]any, error) {
	rec, err := s.repository.Get(ctx, s.descriptor, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	return s.shape(ctx, rec, opts)
}

// shape turns a stored record into its response object.
func (s *resourceService) shape(ctx context.Context, rec models.Record, opts transfer.Options) (map[string]any, error) {
	langs := []string{opts.Language}
	for _, l := range s.languages {
		if !slices.Contains(langs, l) {
			langs = append(langs, l)
		}
	}

	dto, err := transfer.BuildDTO(ctx, s.descriptor, rec, s.repository, opts.LoadRelations(s.descriptor), langs)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*resourceService.shape").Str("resource", s.descriptor.Name).Int64("id", rec.ID).Msg("error building record snapshot")
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return transfer.BuildRTO(dto, opts), nil
}

func (s *resourceService) options(ctx context.Context, view models.View) transfer.Options {
	return transfer.ResolveOptions(s.descriptor, view, utils.GetLanguageFromContext(ctx, s.defaultLanguage()), s.languages, s.currency)
}

func (s *resourceService) decode(ctx context.Context, body map[string]any, create bool) (models.Record, error) {
	rec, err := transfer.DecodePayload(s.descriptor, body, s.defaultLanguage(), s.languages)
	if err != nil {
		var payloadErr *transfer.PayloadError
		if errors.As(err, &payloadErr) {
			return models.Record{}, &ValidationErrors{Messages: payloadErr.Messages}
		}
		return models.Record{}, fmt.Errorf("%w: %w", ErrClientInput, err)
	}
	if create {
		transfer.FillSlugs(s.descriptor, rec.Translations)
	}

	err = s.validator.Validate(ctx, validators.Record{
		Descriptor:      s.descriptor,
		Record:          rec,
		Create:          create,
		DefaultLanguage: s.defaultLanguage(),
	})
	if err != nil {
		var fieldErrs *validators.FieldErrors
		if errors.As(err, &fieldErrs) {
			return models.Record{}, &ValidationErrors{Messages: fieldErrs.Messages}
		}
		logger.FromContext(ctx).Err(err).Str("func", "*resourceService.decode").Str("resource", s.descriptor.Name).Msg("record validation failed")
		return models.Record{}, fmt.Errorf("%w: %w", ErrClientInput, err)
	}

	if rec.Fields == nil {
		rec.Fields = make(map[string]any)
	}
	return rec, nil
}

func (s *resourceService) hashPassword(rec *models.Record) error {
	field := s.descriptor.PasswordField
	if field == "" {
		return nil
	}
	plain, ok := rec.Fields[field].(string)
	if !ok || plain == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	rec.Fields[field] = string(hash)
	return nil
}

// storeError maps repository errors to service error kinds.
func (s *resourceService) storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return fmt.Errorf("%s %w", s.descriptor.Label, ErrNotFound)
	case errors.Is(err, store.ErrMissingReference):
		return &ValidationErrors{Messages: []string{"a referenced record does not exist"}}
	case errors.Is(err, store.ErrDuplicateKey), errors.Is(err, store.ErrEmailAlreadyExists):
		return &ValidationErrors{Messages: []string{"a record with the same unique value already exists"}}
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// done records the outcome of op and returns err unchanged.
func (s *resourceService) done(op string, err error) error {
	s.observer.IncrementResourceOperation(s.descriptor.Name, op, Outcome(err))
	return err
}

func (s *resourceService) defaultLanguage() string {
	if len(s.languages) == 0 {
		return ""
	}
	return s.languages[0]
}

// Outcome names the error kind of err for metrics labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrClientInput):
		return "client_input"
	case errors.Is(err, ErrConflict):
		return "conflict"
	}
	return "persistence"
}

func mergeTranslations(existing, incoming models.Translations) models.Translations {
	merged := make(models.Translations, len(existing))
	for lang, values := range existing {
		merged[lang] = maps.Clone(values)
	}
	for lang, values := range incoming {
		for field, value := range values {
			merged.Set(lang, field, value)
		}
	}
	return merged
}
