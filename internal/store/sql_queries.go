package store

import (
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-rest-api/models"
)

const (
	mainAlias  = "t"
	langAlias  = "l"
	joinAlias  = "j"
	langColumn = "lang"
)

func qualify(alias, column string) string {
	return alias + "." + column
}

// fieldColumn resolves a public field name to its qualified column. The
// second result reports whether the column lives in the language table.
func fieldColumn(d *models.ResourceDescriptor, field string) (string, bool, error) {
	spec, ok := d.Field(field)
	if !ok {
		return "", false, fmt.Errorf("%w: unknown field %q", ErrBuildingSQLQuery, field)
	}
	if spec.Translatable {
		return qualify(langAlias, spec.Column), true, nil
	}
	return qualify(mainAlias, spec.Column), false, nil
}

// listQueries builds the page and count queries of q. Both share joins and
// predicates; only the page query is ordered and bounded.
func (db *DB) listQueries(d *models.ResourceDescriptor, q models.Query, lang string) (page, count sq.SelectBuilder, err error) {
	var (
		where    sq.And
		needLang bool
	)

	for _, cond := range q.Filters {
		column, translatable, err := fieldColumn(d, cond.Field)
		if err != nil {
			return page, count, err
		}
		pred, err := db.predicate(column, cond)
		if err != nil {
			return page, count, err
		}
		needLang = needLang || translatable
		where = append(where, pred)
	}

	if len(q.Search) > 0 {
		var anyOf sq.Or
		for _, cond := range q.Search {
			column, translatable, err := fieldColumn(d, cond.Field)
			if err != nil {
				return page, count, err
			}
			needLang = needLang || translatable
			anyOf = append(anyOf, db.caseInsensitiveLike(column, cond.Value))
		}
		where = append(where, anyOf)
	}

	idColumn := qualify(mainAlias, d.IDColumn)
	orderBy := []string{idColumn + " " + string(models.Asc)}
	if q.Sort.Field != "" && q.Sort.Field != d.IDField {
		column, translatable, err := fieldColumn(d, q.Sort.Field)
		if err != nil {
			return page, count, err
		}
		needLang = needLang || translatable
		orderBy = []string{column + " " + string(direction(q.Sort.Direction)), idColumn + " " + string(models.Asc)}
	} else if q.Sort.Field == d.IDField {
		orderBy = []string{idColumn + " " + string(direction(q.Sort.Direction))}
	}

	base := db.builder.Select().From(d.Table + " " + mainAlias)
	if needLang && d.LangTable != "" {
		base = base.LeftJoin(
			fmt.Sprintf("%s %s ON %s = %s AND %s = ?", d.LangTable, langAlias, qualify(langAlias, d.IDColumn), idColumn, qualify(langAlias, langColumn)),
			lang,
		)
	}
	if len(where) > 0 {
		base = base.Where(where)
	}

	limit := max(q.Pagination.Limit, 1)
	page = base.Columns(idColumn).
		OrderBy(orderBy...).
		Limit(uint64(limit)).
		Offset(uint64(q.Pagination.Offset()))
	count = base.Columns("COUNT(*)")

	return page, count, nil
}

func direction(d models.Direction) models.Direction {
	if d == models.Desc {
		return models.Desc
	}
	return models.Asc
}

func (db *DB) predicate(column string, cond models.FilterCondition) (sq.Sqlizer, error) {
	switch cond.Operator {
	case models.OpEq, models.OpIn:
		return sq.Eq{column: cond.Value}, nil
	case models.OpNot, models.OpNotIn:
		return sq.NotEq{column: cond.Value}, nil
	case models.OpGt:
		return sq.Gt{column: cond.Value}, nil
	case models.OpGte:
		return sq.GtOrEq{column: cond.Value}, nil
	case models.OpLt:
		return sq.Lt{column: cond.Value}, nil
	case models.OpLte:
		return sq.LtOrEq{column: cond.Value}, nil
	case models.OpLike:
		return like(column, "LIKE", cond.Value), nil
	case models.OpILike:
		return db.caseInsensitiveLike(column, cond.Value), nil
	case models.OpBetween:
		bounds, ok := cond.Value.([2]any)
		if !ok {
			return nil, fmt.Errorf("%w: between needs two bounds", ErrBuildingSQLQuery)
		}
		return sq.Expr(column+" BETWEEN ? AND ?", bounds[0], bounds[1]), nil
	case models.OpIsNull:
		if isNull, _ := cond.Value.(bool); isNull {
			return sq.Eq{column: nil}, nil
		}
		return sq.NotEq{column: nil}, nil
	}
	return nil, fmt.Errorf("%w: unsupported operator %q", ErrBuildingSQLQuery, cond.Operator)
}

// ownColumns returns the non-translatable fields of d except the identity.
func ownColumns(d *models.ResourceDescriptor) []models.FieldSpec {
	var specs []models.FieldSpec
	for _, f := range d.Fields {
		if f.Name != d.IDField && !f.Translatable {
			specs = append(specs, f)
		}
	}
	return specs
}

func langColumns(d *models.ResourceDescriptor) []models.FieldSpec {
	var specs []models.FieldSpec
	for _, f := range d.Fields {
		if f.Translatable {
			specs = append(specs, f)
		}
	}
	return specs
}

func (db *DB) selectRecordQuery(d *models.ResourceDescriptor, id int64) sq.SelectBuilder {
	columns := []string{d.IDColumn}
	for _, f := range ownColumns(d) {
		columns = append(columns, f.Column)
	}
	return db.builder.Select(columns...).From(d.Table).Where(sq.Eq{d.IDColumn: id})
}

func (db *DB) selectTranslationsQuery(d *models.ResourceDescriptor, id int64) sq.SelectBuilder {
	columns := []string{langColumn}
	for _, f := range langColumns(d) {
		columns = append(columns, f.Column)
	}
	return db.builder.Select(columns...).From(d.LangTable).Where(sq.Eq{d.IDColumn: id}).OrderBy(langColumn)
}

// insertRecordQuery inserts the own fields of rec that d declares.
func (db *DB) insertRecordQuery(d *models.ResourceDescriptor, rec models.Record) (string, []any, error) {
	var (
		columns []string
		values  []any
	)
	for _, f := range ownColumns(d) {
		if v, ok := rec.Fields[f.Name]; ok {
			columns = append(columns, f.Column)
			values = append(values, v)
		}
	}

	if len(columns) == 0 {
		return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", d.Table, d.IDColumn), nil, nil
	}

	return db.builder.Insert(d.Table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING " + d.IDColumn).
		ToSql()
}

func (db *DB) updateRecordQuery(d *models.ResourceDescriptor, rec models.Record) (sq.UpdateBuilder, bool) {
	set := make(map[string]any)
	for _, f := range ownColumns(d) {
		if v, ok := rec.Fields[f.Name]; ok {
			set[f.Column] = v
		}
	}
	return db.builder.Update(d.Table).SetMap(set).Where(sq.Eq{d.IDColumn: rec.ID}), len(set) > 0
}

func (db *DB) deleteTranslationsQuery(d *models.ResourceDescriptor, id int64) sq.DeleteBuilder {
	return db.builder.Delete(d.LangTable).Where(sq.Eq{d.IDColumn: id})
}

// insertTranslationsQuery writes one row per language of t, in sorted
// language order. ok is false when there is nothing to insert.
func (db *DB) insertTranslationsQuery(d *models.ResourceDescriptor, id int64, t models.Translations) (sq.InsertBuilder, bool) {
	specs := langColumns(d)
	columns := []string{d.IDColumn, langColumn}
	for _, f := range specs {
		columns = append(columns, f.Column)
	}

	langs := make([]string, 0, len(t))
	for lang := range t {
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	insert := db.builder.Insert(d.LangTable).Columns(columns...)
	for _, lang := range langs {
		values := []any{id, lang}
		for _, f := range specs {
			v, _ := t.Get(lang, f.Name)
			values = append(values, v)
		}
		insert = insert.Values(values...)
	}
	return insert, len(langs) > 0
}

func (db *DB) deleteLinksQuery(rel models.RelationSpec, ownerID int64) sq.DeleteBuilder {
	return db.builder.Delete(rel.JoinTable).Where(sq.Eq{rel.ForeignKey: ownerID})
}

func (db *DB) insertLinksQuery(rel models.RelationSpec, ownerID int64, ids []int64) (sq.InsertBuilder, bool) {
	insert := db.builder.Insert(rel.JoinTable).Columns(rel.ForeignKey, rel.JoinColumn)
	for _, id := range ids {
		insert = insert.Values(ownerID, id)
	}
	return insert, len(ids) > 0
}

func (db *DB) deleteRecordQuery(d *models.ResourceDescriptor, id int64) sq.DeleteBuilder {
	return db.builder.Delete(d.Table).Where(sq.Eq{d.IDColumn: id})
}

// projectionColumns selects id, active flag and, when not translated, the
// name of a related table aliased as t.
func projectionColumns(rel models.RelationSpec) []string {
	columns := []string{qualify(mainAlias, rel.IDColumn)}
	if rel.ActiveColumn != "" {
		columns = append(columns, qualify(mainAlias, rel.ActiveColumn))
	}
	if rel.NameLangTable == "" && rel.NameColumn != "" {
		columns = append(columns, qualify(mainAlias, rel.NameColumn))
	}
	return columns
}

func (db *DB) selectProjectionQuery(rel models.RelationSpec, id int64) sq.SelectBuilder {
	return db.builder.Select(projectionColumns(rel)...).
		From(rel.Table + " " + mainAlias).
		Where(sq.Eq{qualify(mainAlias, rel.IDColumn): id})
}

func (db *DB) selectLinkedProjectionsQuery(rel models.RelationSpec, ownerID int64) sq.SelectBuilder {
	return db.builder.Select(projectionColumns(rel)...).
		From(rel.Table + " " + mainAlias).
		Join(fmt.Sprintf("%s %s ON %s = %s", rel.JoinTable, joinAlias, qualify(joinAlias, rel.JoinColumn), qualify(mainAlias, rel.IDColumn))).
		Where(sq.Eq{qualify(joinAlias, rel.ForeignKey): ownerID}).
		OrderBy(qualify(mainAlias, rel.IDColumn))
}

func (db *DB) selectImagesQuery(rel models.RelationSpec, ownerID int64, limit int) sq.SelectBuilder {
	query := db.builder.Select(qualify(mainAlias, rel.IDColumn), qualify(mainAlias, "position"), qualify(mainAlias, "cover")).
		From(rel.Table+" "+mainAlias).
		Where(sq.Eq{qualify(mainAlias, rel.ForeignKey): ownerID}).
		OrderBy(qualify(mainAlias, "position"), qualify(mainAlias, rel.IDColumn))
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	return query
}

func (db *DB) selectNamesQuery(rel models.RelationSpec, ids []int64) sq.SelectBuilder {
	return db.builder.Select(rel.IDColumn, langColumn, rel.NameColumn).
		From(rel.NameLangTable).
		Where(sq.Eq{rel.IDColumn: ids}).
		OrderBy(rel.IDColumn, langColumn)
}
