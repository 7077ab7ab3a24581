package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-api/internal/config"
	"github.com/MKhiriev/go-rest-api/internal/logger"
	"github.com/MKhiriev/go-rest-api/models"
)

func newTestRecordRepo(t *testing.T) (*recordRepository, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	l := logger.Nop()
	return &recordRepository{
		db:     newDB(conn, config.DriverPostgres, NewPostgresErrorClassifier(), l),
		logger: l,
	}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestRecordRepository_List(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	q := models.Query{Pagination: models.Pagination{Page: 1, Limit: 2}}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products t")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id_product FROM products t ORDER BY t.id_product ASC LIMIT 2 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id_product"}).AddRow(1).AddRow(2))

	result, err := repo.List(context.Background(), testDescriptor(), q, "en")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Total)
	assert.Equal(t, []int64{1, 2}, result.IDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_List_EmptySkipsPageQuery(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	result, err := repo.List(context.Background(), testDescriptor(), models.Query{Pagination: models.Pagination{Page: 1, Limit: 20}}, "en")
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.NotNil(t, result.IDs)
	assert.Empty(t, result.IDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Get(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_product, reference, price, active FROM products WHERE id_product = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id_product", "reference", "price", "active"}).
			AddRow(int64(5), "MUG-1", []byte("12.50"), true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT lang, name, link_rewrite FROM product_lang WHERE id_product = $1 ORDER BY lang")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"lang", "name", "link_rewrite"}).
			AddRow("en", "Mug", "mug").
			AddRow("it", "Tazza", "tazza"))

	rec, err := repo.Get(context.Background(), testDescriptor(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.ID)
	assert.Equal(t, "MUG-1", rec.Fields["reference"])
	assert.True(t, decimal.RequireFromString("12.5").Equal(rec.Fields["price"].(decimal.Decimal)))
	assert.Equal(t, true, rec.Fields["active"])
	name, ok := rec.Translations.Get("it", "name")
	assert.True(t, ok)
	assert.Equal(t, "Tazza", name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectQuery("SELECT id_product").
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), testDescriptor(), 9)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordRepository_Create(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	translations := models.Translations{}
	translations.Set("en", "name", "Mug")
	rec := models.Record{
		Fields:       map[string]any{"reference": "MUG-1"},
		Translations: translations,
		Links:        map[string][]int64{"categories": {2}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO products (reference) VALUES ($1) RETURNING id_product")).
		WithArgs("MUG-1").
		WillReturnRows(sqlmock.NewRows([]string{"id_product"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO product_lang (id_product,lang,name,link_rewrite) VALUES ($1,$2,$3,$4)")).
		WithArgs(int64(11), "en", "Mug", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM category_product WHERE id_product = $1")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO category_product (id_product,id_category) VALUES ($1,$2)")).
		WithArgs(int64(11), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.Create(context.Background(), testDescriptor(), rec)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Create_MissingReferenceRollsBack(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	rec := models.Record{
		Fields: map[string]any{"reference": "MUG-1"},
		Links:  map[string][]int64{"categories": {404}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id_product"}).AddRow(11))
	mock.ExpectExec("DELETE FROM category_product").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO category_product").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), testDescriptor(), rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingReference)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Update_ReplacesTranslations(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	translations := models.Translations{}
	translations.Set("en", "name", "Mug")
	rec := models.Record{ID: 4, Fields: map[string]any{"active": false}, Translations: translations}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET active = $1 WHERE id_product = $2")).
		WithArgs(false, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_lang WHERE id_product = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO product_lang").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), testDescriptor(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Update_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), testDescriptor(), models.Record{ID: 4, Fields: map[string]any{"active": true}})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Delete(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM product_lang WHERE id_product = $1")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM category_product WHERE id_product = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id_product = $1")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), testDescriptor(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM product_lang").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM category_product").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), testDescriptor(), 4)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_BeginError(t *testing.T) {
	repo, mock := newTestRecordRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("conn refused"))

	err := repo.Delete(context.Background(), testDescriptor(), 4)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestRecordRepository_LoadProjections_NameFallback(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	rel := testDescriptor().Relations[0]

	mock.ExpectQuery("SELECT t.id_category, t.active FROM categories t JOIN category_product").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id_category", "active"}).AddRow(2, true).AddRow(3, false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_category, lang, name FROM category_lang WHERE id_category IN ($1,$2)")).
		WithArgs(int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id_category", "lang", "name"}).
			AddRow(2, "en", "Home").
			AddRow(2, "it", "Casa").
			AddRow(3, "en", "").
			AddRow(3, "fr", "Tasses"))

	projections, err := repo.LoadProjections(context.Background(), rel, 4, []string{"it", "en"})
	require.NoError(t, err)
	assert.Equal(t, []models.Projection{
		{ID: 2, Name: "Casa", Active: true},
		{ID: 3, Name: "Tasses", Active: false},
	}, projections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_LoadProjection_Dangling(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	rel := models.RelationSpec{Table: "manufacturers", IDColumn: "id_manufacturer", NameColumn: "name", ActiveColumn: "active"}

	mock.ExpectQuery("SELECT t.id_manufacturer, t.active, t.name FROM manufacturers t").
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id_manufacturer", "active", "name"}))

	p, err := repo.LoadProjection(context.Background(), rel, 8, []string{"en"})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestRecordRepository_LoadImages(t *testing.T) {
	repo, mock := newTestRecordRepo(t)
	rel := models.RelationSpec{
		Name: "images", Kind: models.Images,
		Table: "images", IDColumn: "id_image", NameColumn: "legend", NameLangTable: "image_lang",
		ForeignKey: "id_product",
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id_image, t.position, t.cover FROM images t WHERE t.id_product = $1 ORDER BY t.position, t.id_image LIMIT 2")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id_image", "position", "cover"}).AddRow(10, 0, true).AddRow(11, 1, false))
	mock.ExpectQuery("SELECT id_image, lang, legend FROM image_lang").
		WillReturnRows(sqlmock.NewRows([]string{"id_image", "lang", "legend"}).AddRow(10, "en", "Front"))

	images, err := repo.LoadImages(context.Background(), rel, 4, []string{"en"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.Image{
		{ID: 10, Position: 0, Cover: true, Legend: "Front"},
		{ID: 11, Position: 1, Cover: false},
	}, images)
}

func TestPickName(t *testing.T) {
	values := map[string]string{"en": "Mug", "fr": "Tasse", "it": ""}

	assert.Equal(t, "Tasse", pickName(values, []string{"fr", "en"}))
	assert.Equal(t, "Mug", pickName(values, []string{"it", "en"}))
	assert.Equal(t, "Mug", pickName(values, []string{"de"}))
	assert.Equal(t, "", pickName(map[string]string{"en": ""}, []string{"en"}))
}
