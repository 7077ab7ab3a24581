package query

import (
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-rest-api/models"
)

func testDescriptor() *models.ResourceDescriptor {
	return &models.ResourceDescriptor{
		Name: "products",
		Fields: []models.FieldSpec{
			{Name: "id", Column: "id", Kind: models.KindInt},
			{Name: "name", Column: "name", Kind: models.KindString, Translatable: true},
			{Name: "reference", Column: "reference", Kind: models.KindString},
			{Name: "price", Column: "price", Kind: models.KindDecimal},
			{Name: "active", Column: "active", Kind: models.KindBool},
			{Name: "date_add", Column: "date_add", Kind: models.KindTime},
			{Name: "secret", Column: "secret", Kind: models.KindString},
		},
		SortableFields:   []string{"id", "name", "price"},
		DefaultSort:      "id",
		SearchableFields: []string{"name", "reference"},
		FilterableFields: []string{"id", "name", "reference", "price", "active", "date_add"},
		DefaultLimit:     50,
	}
}

func parse(t *testing.T, raw string) (models.Query, error) {
	t.Helper()
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return NewEngine(200).Parse(values, testDescriptor())
}

func TestParse_Operators(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.FilterCondition
	}{
		{name: "default eq", raw: "reference=ABC", want: models.FilterCondition{Field: "reference", Operator: models.OpEq, Value: "ABC"}},
		{name: "explicit eq", raw: "id__eq=5", want: models.FilterCondition{Field: "id", Operator: models.OpEq, Value: int64(5)}},
		{name: "gt", raw: "price__gt=10.5", want: models.FilterCondition{Field: "price", Operator: models.OpGt, Value: decimal.RequireFromString("10.5")}},
		{name: "gte", raw: "id__gte=1", want: models.FilterCondition{Field: "id", Operator: models.OpGte, Value: int64(1)}},
		{name: "lt", raw: "id__lt=9", want: models.FilterCondition{Field: "id", Operator: models.OpLt, Value: int64(9)}},
		{name: "lte", raw: "id__lte=9", want: models.FilterCondition{Field: "id", Operator: models.OpLte, Value: int64(9)}},
		{name: "like", raw: "name__like=shirt", want: models.FilterCondition{Field: "name", Operator: models.OpLike, Value: "%shirt%"}},
		{name: "ilike", raw: "name__ilike=Shirt", want: models.FilterCondition{Field: "name", Operator: models.OpILike, Value: "%Shirt%"}},
		{name: "not", raw: "active__not=1", want: models.FilterCondition{Field: "active", Operator: models.OpNot, Value: true}},
		{name: "in", raw: "id__in=1,2,3", want: models.FilterCondition{Field: "id", Operator: models.OpIn, Value: []any{int64(1), int64(2), int64(3)}}},
		{name: "not_in", raw: "reference__not_in=a,b", want: models.FilterCondition{Field: "reference", Operator: models.OpNotIn, Value: []any{"a", "b"}}},
		{name: "between", raw: "id__between=1,10", want: models.FilterCondition{Field: "id", Operator: models.OpBetween, Value: [2]any{int64(1), int64(10)}}},
		{name: "is_null", raw: "reference__is_null=1", want: models.FilterCondition{Field: "reference", Operator: models.OpIsNull, Value: true}},
		{name: "is_not_null", raw: "reference__is_null=0", want: models.FilterCondition{Field: "reference", Operator: models.OpIsNull, Value: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parse(t, tt.raw)
			require.NoError(t, err)
			require.Len(t, q.Filters, 1)

			got := q.Filters[0]
			assert.Equal(t, tt.want.Field, got.Field)
			assert.Equal(t, tt.want.Operator, got.Operator)
			if d, ok := tt.want.Value.(decimal.Decimal); ok {
				assert.True(t, d.Equal(got.Value.(decimal.Decimal)))
				return
			}
			assert.Equal(t, tt.want.Value, got.Value)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason Reason
	}{
		{name: "unknown operator", raw: "price__approx=10", reason: UnknownOperator},
		{name: "unknown operator on unknown field", raw: "color__near=red", reason: UnknownOperator},
		{name: "empty operator", raw: "price__=10", reason: UnknownOperator},
		{name: "between with one value", raw: "id__between=1", reason: MalformedBetween},
		{name: "between with three values", raw: "id__between=1,2,3", reason: MalformedBetween},
		{name: "empty in list", raw: "id__in=", reason: EmptyInList},
		{name: "in list of commas", raw: "id__not_in=,,", reason: EmptyInList},
		{name: "int conversion", raw: "id=abc", reason: InvalidValue},
		{name: "like on non string", raw: "id__like=1", reason: InvalidValue},
		{name: "time conversion", raw: "date_add__gt=yesterday", reason: InvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidQuery)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.reason, parseErr.Reason)
		})
	}
}

func TestParse_DropsUndeclaredFields(t *testing.T) {
	q, err := parse(t, "secret=x&color=red&utm_source=mail")
	require.NoError(t, err)
	assert.Empty(t, q.Filters)
}

func TestParse_ReservedKeysAreNotFilters(t *testing.T) {
	q, err := parse(t, "page=2&limit=10&order_by=name&order_way=desc&include=category&fields=name&search=x")
	require.NoError(t, err)
	assert.Empty(t, q.Filters)
}

func TestParse_Search(t *testing.T) {
	q, err := parse(t, "search=blue")
	require.NoError(t, err)
	require.Len(t, q.Search, 2)
	assert.Equal(t, models.FilterCondition{Field: "name", Operator: models.OpLike, Value: "%blue%"}, q.Search[0])
	assert.Equal(t, models.FilterCondition{Field: "reference", Operator: models.OpLike, Value: "%blue%"}, q.Search[1])
}

func TestParse_EscapesWildcards(t *testing.T) {
	q, err := parse(t, url.Values{"search": {`50%_off\`}}.Encode())
	require.NoError(t, err)
	require.Len(t, q.Search, 2)
	assert.Equal(t, `%50\%\_off\\%`, q.Search[0].Value)

	q, err = parse(t, "name__like=%25")
	require.NoError(t, err)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, `%\%%`, q.Filters[0].Value)
}

func TestParse_SearchWithoutSearchableFieldsIsNoop(t *testing.T) {
	d := testDescriptor()
	d.SearchableFields = nil

	q, err := NewEngine(200).Parse(url.Values{"search": {"blue"}}, d)
	require.NoError(t, err)
	assert.Empty(t, q.Search)
	assert.Empty(t, q.Filters)
}

func TestParse_Limit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "limit=500", want: 200},
		{raw: "limit=201", want: 200},
		{raw: "limit=200", want: 200},
		{raw: "limit=10", want: 10},
		{raw: "limit=0", want: 50},
		{raw: "limit=-3", want: 50},
		{raw: "limit=abc", want: 50},
		{raw: "", want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, err := parse(t, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Pagination.Limit)
		})
	}
}

func TestParse_LimitFallsBackWhenDescriptorHasNoDefault(t *testing.T) {
	d := testDescriptor()
	d.DefaultLimit = 0

	q, err := NewEngine(0).Parse(url.Values{}, d)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, q.Pagination.Limit)
}

func TestParse_Page(t *testing.T) {
	tests := []struct {
		raw        string
		wantPage   int
		wantOffset int
	}{
		{raw: "page=3&limit=10", wantPage: 3, wantOffset: 20},
		{raw: "page=0&limit=10", wantPage: 1, wantOffset: 0},
		{raw: "page=-7&limit=10", wantPage: 1, wantOffset: 0},
		{raw: "offset=25&limit=10", wantPage: 3, wantOffset: 20},
		{raw: "offset=-5&limit=10", wantPage: 1, wantOffset: 0},
		{raw: "limit=10", wantPage: 1, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, err := parse(t, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, q.Pagination.Page)
			assert.Equal(t, tt.wantOffset, q.Pagination.Offset())
		})
	}
}

func TestParse_HugePageKeepsOffsetInRange(t *testing.T) {
	q, err := parse(t, "page=92233720368547758&limit=200")
	require.NoError(t, err)
	assert.Equal(t, 200, q.Pagination.Limit)
	assert.Positive(t, q.Pagination.Offset())
	assert.LessOrEqual(t, q.Pagination.Page, math.MaxInt/200)

	q, err = parse(t, "page=9223372036854775807&limit=1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, q.Pagination.Offset(), 0)
}

func TestParse_Sort(t *testing.T) {
	tests := []struct {
		raw  string
		want models.SortSpec
	}{
		{raw: "order_by=price&order_way=DESC", want: models.SortSpec{Field: "price", Direction: models.Desc}},
		{raw: "order_by=price&order_way=desc", want: models.SortSpec{Field: "price", Direction: models.Desc}},
		{raw: "order_by=price", want: models.SortSpec{Field: "price", Direction: models.Asc}},
		{raw: "order_by=price%3BDROP%20TABLE%20products", want: models.SortSpec{Field: "id", Direction: models.Asc}},
		{raw: "order_by=secret&order_way=sideways", want: models.SortSpec{Field: "id", Direction: models.Asc}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, err := parse(t, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Sort)
		})
	}
}

func TestParse_IncludeAndFields(t *testing.T) {
	q, err := parse(t, "include=Category,%20images,,unknown&fields=name,price")
	require.NoError(t, err)
	assert.Equal(t, []string{"category", "images", "unknown"}, q.Include)
	assert.Equal(t, []string{"name", "price"}, q.Fields)
}

func TestParse_LanguageKeysAreNotFilters(t *testing.T) {
	q, err := parse(t, "language=IT&languages=en,%20FR&name=Mug")
	require.NoError(t, err)

	assert.Equal(t, "it", q.Language)
	assert.Equal(t, []string{"en", "fr"}, q.Languages)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, "name", q.Filters[0].Field)
}

func TestParseView_Empty(t *testing.T) {
	assert.Equal(t, models.View{}, ParseView(url.Values{}))
}

func TestParse_RepeatedKeys(t *testing.T) {
	q, err := parse(t, "id__gt=1&id__gt=3&id__in=1,2&id__in=3")
	require.NoError(t, err)
	require.Len(t, q.Filters, 3)

	assert.Equal(t, models.OpGt, q.Filters[0].Operator)
	assert.Equal(t, int64(1), q.Filters[0].Value)
	assert.Equal(t, int64(3), q.Filters[1].Value)
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, q.Filters[2].Value)
}

func TestPagination_TotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{total: 150, limit: 50, want: 3},
		{total: 1, limit: 50, want: 1},
		{total: 151, limit: 50, want: 4},
		{total: 0, limit: 50, want: 0},
	}

	for _, tt := range tests {
		p := models.Pagination{Page: 1, Limit: tt.limit}
		assert.Equal(t, tt.want, p.TotalPages(tt.total))
	}
}
