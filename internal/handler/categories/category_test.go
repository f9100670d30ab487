package categories

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"annuary/internal/cache"
	"annuary/internal/database"
	"annuary/internal/model"
	"annuary/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func restore() {
	listCategories = store.ListCategories
	highlightCategory = store.HighlightCategory
}

func newCacheStore(values map[string]string, sets map[string][]string) *cache.Store {
	return cache.NewStore(&cache.FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			if v, ok := values[key]; ok {
				return redis.NewStringResult(v, nil)
			}
			return redis.NewStringResult("", redis.Nil)
		},
		SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
			values[key] = value.(string)
			return redis.NewStatusResult("OK", nil)
		},
		SAddFn: func(_ context.Context, key string, members ...any) *redis.IntCmd {
			for _, m := range members {
				sets[key] = append(sets[key], m.(string))
			}
			return redis.NewIntResult(1, nil)
		},
		SMembersFn: func(_ context.Context, key string) *redis.StringSliceCmd {
			return redis.NewStringSliceResult(sets[key], nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			for _, k := range keys {
				delete(values, k)
				delete(sets, k)
			}
			return redis.NewIntResult(1, nil)
		},
	})
}

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(ctx context.Context) error          { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error        { t.rolledBack = true; return nil }
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

var _ pgx.Tx = (*fakeTx)(nil)

func TestListCategoriesHandler(t *testing.T) {
	e := echo.New()
	db := &database.FakeDB{}

	t.Run("miss then cached", func(t *testing.T) {
		t.Cleanup(restore)
		calls := 0
		listCategories = func(_ context.Context, _ database.Querier) ([]model.ServiceCategory, error) {
			calls++
			return []model.ServiceCategory{
				{ID: 2, Name: "Massage", Validated: true},
				{ID: 1, Name: "Yoga", Validated: true, Highlighted: true},
			}, nil
		}
		values := map[string]string{}
		s := newCacheStore(values, map[string][]string{})

		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, ListCategoriesHandler(db, s)(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Massage")
		require.Contains(t, values, cache.KeySubMenuCategory)
		require.Equal(t, 1, calls)

		// 第二次請求命中快取
		rec = httptest.NewRecorder()
		require.NoError(t, ListCategoriesHandler(db, s)(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 1, calls)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		listCategories = func(_ context.Context, _ database.Querier) ([]model.ServiceCategory, error) {
			return nil, errors.New("db")
		}
		s := newCacheStore(map[string]string{}, map[string][]string{})
		req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, ListCategoriesHandler(db, s)(e.NewContext(req, rec)))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHighlightCategoryHandler(t *testing.T) {
	e := echo.New()

	newCtx := func(id string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/categories/:id/highlight")
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c, rec
	}

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		s := newCacheStore(map[string]string{}, map[string][]string{})
		ctx, rec := newCtx("abc")
		require.NoError(t, HighlightCategoryHandler(&database.FakeDB{}, s)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not validated", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &fakeTx{}
		db := &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		highlightCategory = func(_ context.Context, _ database.Querier, _ int) error {
			return errors.New("HighlightCategory: no validated category 9")
		}
		s := newCacheStore(map[string]string{}, map[string][]string{})
		ctx, rec := newCtx("9")
		require.NoError(t, HighlightCategoryHandler(db, s)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.True(t, tx.rolledBack)
		require.False(t, tx.committed)
	})

	t.Run("ok invalidates cache", func(t *testing.T) {
		t.Cleanup(restore)
		tx := &fakeTx{}
		db := &database.FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
		highlightCategory = func(_ context.Context, _ database.Querier, id int) error {
			require.Equal(t, 2, id)
			return nil
		}
		values := map[string]string{
			cache.KeyCategoryOfTheMonth: "{}",
			cache.KeySubMenuCategory:    "[]",
		}
		sets := map[string][]string{
			"tag:" + cache.TagCategory: {cache.KeyCategoryOfTheMonth, cache.KeySubMenuCategory},
		}
		s := newCacheStore(values, sets)

		ctx, rec := newCtx("2")
		require.NoError(t, HighlightCategoryHandler(db, s)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.True(t, tx.committed)
		require.Empty(t, values)
		require.Empty(t, sets)
	})
}
