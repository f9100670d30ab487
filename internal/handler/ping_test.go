package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"annuary/internal/cache"
	"annuary/internal/database"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newGetCtx(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPingHandler(t *testing.T) {
	e := echo.New()

	t.Run("ok", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
		rdb := &cache.FakeCache{GetFn: func(_ context.Context, _ string) *redis.StringCmd {
			return redis.NewStringResult("", redis.Nil)
		}}
		ctx, rec := newGetCtx(e, "/api/ping")
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "pong")
	})

	t.Run("db down", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return errors.New("down") }}
		ctx, rec := newGetCtx(e, "/api/ping")
		require.NoError(t, PingHandler(db, &cache.FakeCache{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "database unhealthy")
	})

	t.Run("redis down", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return nil }}
		rdb := &cache.FakeCache{GetFn: func(_ context.Context, _ string) *redis.StringCmd {
			return redis.NewStringResult("", errors.New("conn refused"))
		}}
		ctx, rec := newGetCtx(e, "/api/ping")
		require.NoError(t, PingHandler(db, rdb)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "cache unhealthy")
	})
}
