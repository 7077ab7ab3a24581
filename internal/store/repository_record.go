package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/models"
)

// recordRepository is the SQL implementation of [RecordRepository]. One
// instance serves every resource; table and column names come from the
// descriptor passed to each call.
type recordRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
	}
}

func (r *recordRepository) List(ctx context.Context, d *models.ResourceDescriptor, q models.Query, lang string) (models.ListResult, error) {
	log := logger.FromContext(ctx)

	pageQuery, countQuery, err := r.db.listQueries(d, q, lang)
	if err != nil {
		return models.ListResult{}, err
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var total int64
	if err = r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Str("resource", d.Name).Msg("error counting records")
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	result := models.ListResult{IDs: []int64{}, Total: total}
	if total == 0 {
		return result, nil
	}

	pageSQL, pageArgs, err := pageQuery.ToSql()
	if err != nil {
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	rows, err := r.db.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.List").Str("resource", d.Name).Msg("error selecting page")
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return models.ListResult{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		result.IDs = append(result.IDs, id)
	}
	if err = rows.Err(); err != nil {
		return models.ListResult{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func (r *recordRepository) Get(ctx context.Context, d *models.ResourceDescriptor, id int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectRecordQuery(d, id).ToSql()
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	specs := ownColumns(d)
	values, ptrs := scanDest(len(specs) + 1)
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(ptrs...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).Str("func", "*recordRepository.Get").Str("resource", d.Name).Msg("error selecting record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rec := models.Record{
		Fields:       make(map[string]any, len(specs)),
		Translations: make(models.Translations),
	}
	if rec.ID, err = int64Value(values[0]); err != nil {
		return models.Record{}, err
	}
	for i, spec := range specs {
		v, err := columnValue(spec.Kind, values[i+1])
		if err != nil {
			return models.Record{}, fmt.Errorf("%s: %w", spec.Name, err)
		}
		rec.Fields[spec.Name] = v
	}

	if d.LangTable != "" {
		if err = r.loadTranslations(ctx, d, &rec); err != nil {
			log.Err(err).Str("func", "*recordRepository.Get").Str("resource", d.Name).Msg("error selecting translations")
			return models.Record{}, err
		}
	}

	return rec, nil
}

func (r *recordRepository) loadTranslations(ctx context.Context, d *models.ResourceDescriptor, rec *models.Record) error {
	query, args, err := r.db.selectTranslationsQuery(d, rec.ID).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	specs := langColumns(d)
	for rows.Next() {
		values, ptrs := scanDest(len(specs) + 1)
		if err = rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		lang := stringValue(values[0])
		for i, spec := range specs {
			rec.Translations.Set(lang, spec.Name, stringValue(values[i+1]))
		}
	}

	return rows.Err()
}

func (r *recordRepository) Create(ctx context.Context, d *models.ResourceDescriptor, rec models.Record) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.insertRecordQuery(d, rec)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	err = r.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
		}
		if err := r.writeTranslations(ctx, tx, d, id, rec.Translations, false); err != nil {
			return err
		}
		return r.writeLinks(ctx, tx, d, id, rec.Links)
	})
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.Create").Str("resource", d.Name).Msg("error creating record")
		return 0, err
	}

	return id, nil
}

func (r *recordRepository) Update(ctx context.Context, d *models.ResourceDescriptor, rec models.Record) error {
	log := logger.FromContext(ctx)

	update, hasFields := r.db.updateRecordQuery(d, rec)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if hasFields {
			result, err := update.RunWith(tx).ExecContext(ctx)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
			}
			if affected, err := result.RowsAffected(); err == nil && affected == 0 {
				return ErrRecordNotFound
			}
		}
		if err := r.writeTranslations(ctx, tx, d, rec.ID, rec.Translations, true); err != nil {
			return err
		}
		return r.writeLinks(ctx, tx, d, rec.ID, rec.Links)
	})
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		log.Err(err).Str("func", "*recordRepository.Update").Str("resource", d.Name).Int64("id", rec.ID).Msg("error updating record")
	}

	return err
}

func (r *recordRepository) Delete(ctx context.Context, d *models.ResourceDescriptor, id int64) error {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if d.LangTable != "" {
			if _, err := r.db.deleteTranslationsQuery(d, id).RunWith(tx).ExecContext(ctx); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		for _, rel := range d.Relations {
			if rel.Kind != models.ManyToMany {
				continue
			}
			if _, err := r.db.deleteLinksQuery(rel, id).RunWith(tx).ExecContext(ctx); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		result, err := r.db.deleteRecordQuery(d, id).RunWith(tx).ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
		}
		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		log.Err(err).Str("func", "*recordRepository.Delete").Str("resource", d.Name).Int64("id", id).Msg("error deleting record")
	}

	return err
}

func (r *recordRepository) writeTranslations(ctx context.Context, tx *sql.Tx, d *models.ResourceDescriptor, id int64, t models.Translations, replace bool) error {
	if d.LangTable == "" {
		return nil
	}
	if replace {
		if _, err := r.db.deleteTranslationsQuery(d, id).RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	insert, ok := r.db.insertTranslationsQuery(d, id, t)
	if !ok {
		return nil
	}
	if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	return nil
}

func (r *recordRepository) writeLinks(ctx context.Context, tx *sql.Tx, d *models.ResourceDescriptor, id int64, links map[string][]int64) error {
	for _, rel := range d.Relations {
		ids, ok := links[rel.Name]
		if !ok || rel.Kind != models.ManyToMany {
			continue
		}
		if _, err := r.db.deleteLinksQuery(rel, id).RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		insert, ok := r.db.insertLinksQuery(rel, id, ids)
		if !ok {
			continue
		}
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
		}
	}
	return nil
}

// inTx runs fn in a transaction that is committed when fn succeeds and
// rolled back otherwise.
func (r *recordRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (r *recordRepository) LoadProjection(ctx context.Context, rel models.RelationSpec, id int64, langs []string) (*models.Projection, error) {
	query, args, err := r.db.selectProjectionQuery(rel, id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	projections, err := scanProjections(rows, rel)
	if err != nil {
		return nil, err
	}
	// a dangling foreign key renders as no relation
	if len(projections) == 0 {
		return nil, nil
	}

	if err = r.resolveNames(ctx, rel, projections, langs); err != nil {
		return nil, err
	}
	return &projections[0], nil
}

func (r *recordRepository) LoadProjections(ctx context.Context, rel models.RelationSpec, ownerID int64, langs []string) ([]models.Projection, error) {
	query, args, err := r.db.selectLinkedProjectionsQuery(rel, ownerID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	projections, err := scanProjections(rows, rel)
	if err != nil {
		return nil, err
	}

	if err = r.resolveNames(ctx, rel, projections, langs); err != nil {
		return nil, err
	}
	return projections, nil
}

func (r *recordRepository) LoadImages(ctx context.Context, rel models.RelationSpec, ownerID int64, langs []string, limit int) ([]models.Image, error) {
	query, args, err := r.db.selectImagesQuery(rel, ownerID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		values, ptrs := scanDest(3)
		if err = rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		id, err := int64Value(values[0])
		if err != nil {
			return nil, err
		}
		position, _ := int64Value(values[1])
		images = append(images, models.Image{ID: id, Position: int(position), Cover: boolValue(values[2])})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	if rel.NameLangTable == "" || len(images) == 0 {
		return images, nil
	}

	ids := make([]int64, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	legends, err := r.loadNames(ctx, rel, ids, langs)
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].Legend = legends[images[i].ID]
	}

	return images, nil
}

func scanProjections(rows *sql.Rows, rel models.RelationSpec) ([]models.Projection, error) {
	defer rows.Close()

	columns := len(projectionColumns(rel))
	projections := []models.Projection{}
	for rows.Next() {
		values, ptrs := scanDest(columns)
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		id, err := int64Value(values[0])
		if err != nil {
			return nil, err
		}
		p := models.Projection{ID: id, Active: true}
		next := 1
		if rel.ActiveColumn != "" {
			p.Active = boolValue(values[next])
			next++
		}
		if next < columns {
			p.Name = stringValue(values[next])
		}
		projections = append(projections, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return projections, nil
}

func (r *recordRepository) resolveNames(ctx context.Context, rel models.RelationSpec, projections []models.Projection, langs []string) error {
	if rel.NameLangTable == "" || len(projections) == 0 {
		return nil
	}

	ids := make([]int64, len(projections))
	for i, p := range projections {
		ids[i] = p.ID
	}
	names, err := r.loadNames(ctx, rel, ids, langs)
	if err != nil {
		return err
	}
	for i := range projections {
		projections[i].Name = names[projections[i].ID]
	}
	return nil
}

// loadNames returns, per id, the first non-empty name in langs order, or
// the first non-empty name in language code order when none of langs has
// one.
func (r *recordRepository) loadNames(ctx context.Context, rel models.RelationSpec, ids []int64, langs []string) (map[int64]string, error) {
	query, args, err := r.db.selectNamesQuery(rel, ids).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	byID := make(map[int64]map[string]string)
	for rows.Next() {
		values, ptrs := scanDest(3)
		if err = rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		id, err := int64Value(values[0])
		if err != nil {
			return nil, err
		}
		if byID[id] == nil {
			byID[id] = make(map[string]string)
		}
		byID[id][stringValue(values[1])] = stringValue(values[2])
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	names := make(map[int64]string, len(byID))
	for id, values := range byID {
		names[id] = pickName(values, langs)
	}
	return names, nil
}

func pickName(values map[string]string, langs []string) string {
	for _, lang := range langs {
		if v := values[lang]; v != "" {
			return v
		}
	}
	rest := make([]string, 0, len(values))
	for lang := range values {
		rest = append(rest, lang)
	}
	slices.Sort(rest)
	for _, lang := range rest {
		if v := values[lang]; v != "" {
			return v
		}
	}
	return ""
}
