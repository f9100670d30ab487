package router

import (
	"net/http"
	"testing"

	"annuary/internal/cache"
	"annuary/internal/database"
	"annuary/internal/service"
	"annuary/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakePool struct{}

func (fakePool) Submit(t worker.Task) { t() }
func (fakePool) Stop()                {}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, &service.FakeStorage{}, &service.FakeMailer{}, fakePool{}, "http://localhost:8080")

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodGet + " /api/home",
		http.MethodGet + " /api/providers/search",
		http.MethodGet + " /api/providers/last",
		http.MethodGet + " /api/providers/autocomplete",
		http.MethodGet + " /api/providers/:id",
		http.MethodGet + " /api/providers/:id/similar",
		http.MethodGet + " /api/providers/:id/promotions",
		http.MethodGet + " /api/providers/:id/comments",
		http.MethodPost + " /api/providers/:id/comments",
		http.MethodGet + " /api/localities",
		http.MethodGet + " /api/categories",
		http.MethodGet + " /api/categories/:id/providers",
		http.MethodPost + " /api/categories/:id/highlight",
		http.MethodPost + " /api/register/:type_of_user",
		http.MethodGet + " /api/verify/email",
		http.MethodPost + " /api/auth/login",
		http.MethodDelete + " /api/account",
		http.MethodGet + " /api/favorites",
		http.MethodPost + " /api/favorites/:provider_id",
		http.MethodDelete + " /api/favorites/:provider_id",
		http.MethodPost + " /api/promotions",
		http.MethodPut + " /api/promotions/:id",
		http.MethodDelete + " /api/promotions/:id",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}
