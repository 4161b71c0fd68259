package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"go-gin-gorm-shop/internal/core/dispatch"
	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/internal/repo"
	"go-gin-gorm-shop/internal/testutil"
)

func newDispatcher(t *testing.T) *dispatch.Dispatcher {
	t.Helper()
	db := testutil.OpenDB(t, repo.Models()...)
	d := dispatch.New(zaptest.NewLogger(t), nil)
	NewHandlers(repo.NewProductRepo(db), zaptest.NewLogger(t)).Register(d)
	return d
}

func create(t *testing.T, d *dispatch.Dispatcher, name, price string, stock int) uuid.UUID {
	t.Helper()
	id, err := dispatch.Send[uuid.UUID](context.Background(), d, CreateProductCommand{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	require.NoError(t, err)
	return id
}

func get(d *dispatch.Dispatcher, id uuid.UUID) (ProductResponse, error) {
	return dispatch.Send[ProductResponse](context.Background(), d, GetProductByIDQuery{ID: id})
}

func del(d *dispatch.Dispatcher, id uuid.UUID) error {
	_, err := dispatch.Send[dispatch.Unit](context.Background(), d, DeleteProductCommand{ID: id})
	return err
}

func names(rs []ProductResponse) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Name)
	}
	return out
}

func TestCreateThenGet(t *testing.T) {
	d := newDispatcher(t)
	id := create(t, d, "Widget", "9.99", 5)

	got, err := get(d, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Widget", got.Name)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.Price), "price %s", got.Price)
	assert.Equal(t, 5, got.Stock)
}

func TestCreate_Validation(t *testing.T) {
	d := newDispatcher(t)
	long := make([]rune, domain.MaxProductNameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	cases := map[string]CreateProductCommand{
		"empty name":     {Name: "", Price: decimal.NewFromInt(1), Stock: 1},
		"long name":      {Name: string(long), Price: decimal.NewFromInt(1), Stock: 1},
		"zero price":     {Name: "A", Price: decimal.Zero, Stock: 1},
		"negative price": {Name: "A", Price: decimal.NewFromInt(-1), Stock: 1},
		"negative stock": {Name: "A", Price: decimal.NewFromInt(1), Stock: -1},
		"sub-cent price": {Name: "A", Price: decimal.RequireFromString("0.001"), Stock: 1},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dispatch.Send[uuid.UUID](context.Background(), d, cmd)
			assert.True(t, domain.IsKind(err, domain.KindValidation), "got %v", err)
		})
	}

	page, err := dispatch.Send[domain.PagedResult[ProductResponse]](context.Background(), d, ListProductsQuery{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}

func TestUpdate_OverwritesWithoutRevalidating(t *testing.T) {
	d := newDispatcher(t)
	id := create(t, d, "Widget", "9.99", 5)

	_, err := dispatch.Send[dispatch.Unit](context.Background(), d, UpdateProductCommand{
		ID: id, Name: "Gadget", Price: decimal.RequireFromString("19.50"), Stock: 0,
	})
	require.NoError(t, err)
	got, err := get(d, id)
	require.NoError(t, err)
	assert.Equal(t, "Gadget", got.Name)
	assert.True(t, decimal.RequireFromString("19.5").Equal(got.Price))
	assert.Equal(t, 0, got.Stock)

	// the entity does not re-check its invariants on update
	_, err = dispatch.Send[dispatch.Unit](context.Background(), d, UpdateProductCommand{
		ID: id, Name: "Gadget", Price: decimal.RequireFromString("1"), Stock: -3,
	})
	require.NoError(t, err)
	got, err = get(d, id)
	require.NoError(t, err)
	assert.Equal(t, -3, got.Stock)
}

func TestUpdate_Missing(t *testing.T) {
	d := newDispatcher(t)
	_, err := dispatch.Send[dispatch.Unit](context.Background(), d, UpdateProductCommand{ID: uuid.New(), Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = dispatch.Send[dispatch.Unit](context.Background(), d, UpdateProductCommand{Name: "X"})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestDelete_HidesProductFromEveryRead(t *testing.T) {
	d := newDispatcher(t)
	ctx := context.Background()
	keep := create(t, d, "Widget Blue", "2", 3)
	gone := create(t, d, "Widget Red", "2", 3)

	require.NoError(t, del(d, gone))

	_, err := get(d, gone)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	page, err := dispatch.Send[domain.PagedResult[ProductResponse]](ctx, d, ListProductsQuery{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.TotalCount)
	require.Len(t, page.Items, 1)
	assert.Equal(t, keep, page.Items[0].ID)

	low, err := dispatch.Send[[]ProductResponse](ctx, d, LowStockProductsQuery{Threshold: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget Blue"}, names(low))

	found, err := dispatch.Send[[]ProductResponse](ctx, d, SearchProductsQuery{Keyword: "widget"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget Blue"}, names(found))

	// deleted products are not found again, so a second delete is NotFound
	assert.ErrorIs(t, del(d, gone), domain.ErrNotFound)
	_, err = dispatch.Send[dispatch.Unit](ctx, d, UpdateProductCommand{ID: gone, Name: "back"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Pagination(t *testing.T) {
	d := newDispatcher(t)
	for i := 0; i < 15; i++ {
		create(t, d, fmt.Sprintf("P%02d", i), "1", i)
		time.Sleep(time.Millisecond)
	}

	page, err := dispatch.Send[domain.PagedResult[ProductResponse]](context.Background(), d, ListProductsQuery{PageNumber: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.EqualValues(t, 15, page.TotalCount)
	assert.Equal(t, 2, page.PageNumber)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 2, page.TotalPages())
	assert.Equal(t, "P10", page.Items[0].Name)

	empty, err := dispatch.Send[domain.PagedResult[ProductResponse]](context.Background(), d, ListProductsQuery{PageNumber: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.EqualValues(t, 15, empty.TotalCount)
}

func TestList_RejectsOutOfRangePaging(t *testing.T) {
	d := newDispatcher(t)
	for _, q := range []ListProductsQuery{{0, 10}, {1, 0}, {-1, -1}, {1, domain.MaxPageSize + 1}} {
		_, err := dispatch.Send[domain.PagedResult[ProductResponse]](context.Background(), d, q)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "%+v: %v", q, err)
	}
}

func TestList_HugePageNumberIsEmpty(t *testing.T) {
	d := newDispatcher(t)
	create(t, d, "Widget", "1", 1)

	page, err := dispatch.Send[domain.PagedResult[ProductResponse]](context.Background(), d, ListProductsQuery{PageNumber: 1<<62 + 1, PageSize: 4})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestLowStock_ThresholdIsInclusive(t *testing.T) {
	d := newDispatcher(t)
	create(t, d, "ten", "1", 10)
	create(t, d, "eleven", "1", 11)
	create(t, d, "zero", "1", 0)

	low, err := dispatch.Send[[]ProductResponse](context.Background(), d, LowStockProductsQuery{Threshold: 10})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ten", "zero"}, names(low))

	_, err = dispatch.Send[[]ProductResponse](context.Background(), d, LowStockProductsQuery{Threshold: -1})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	d := newDispatcher(t)
	create(t, d, "Widget", "1", 1)
	create(t, d, "Gizmo", "1", 1)
	create(t, d, "100% Cotton", "1", 1)

	found, err := dispatch.Send[[]ProductResponse](context.Background(), d, SearchProductsQuery{Keyword: "wid"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget"}, names(found))

	found, err = dispatch.Send[[]ProductResponse](context.Background(), d, SearchProductsQuery{Keyword: "%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Cotton"}, names(found))

	_, err = dispatch.Send[[]ProductResponse](context.Background(), d, SearchProductsQuery{})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
