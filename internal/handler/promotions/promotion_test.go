package promotions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"annuary/internal/database"
	"annuary/internal/middleware"
	"annuary/internal/model"
	"annuary/internal/service"
	"annuary/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func restore() {
	getProviderByUserID = store.GetProviderByUserID
	getPromotionByID = store.GetPromotionByID
	getCategoryByID = store.GetCategoryByID
	createPromotion = store.CreatePromotion
	updatePromotion = store.UpdatePromotion
	deletePromotion = store.DeletePromotion
	listPromotions = store.ListPromotionsByProvider
}

func validForm() string {
	return "name=Offre&description=desc" +
		"&start_at=2025-01-01&end_at=2025-02-01" +
		"&displayed_from=2024-12-15&displayed_until=2025-02-01"
}

func newPromotionCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: 30, Roles: []string{model.RoleProvider}})
	return c, rec
}

func newIDCtx(e *echo.Echo, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := newPromotionCtx(e, method, body)
	c.SetPath("/api/promotions/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestCreatePromotionHandler(t *testing.T) {
	e := echo.New()
	db := &database.FakeDB{}

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		ctx, rec := newPromotionCtx(e, http.MethodPost, validForm())
		require.NoError(t, CreatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("equal dates rejected", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		body := "name=Offre&description=d" +
			"&start_at=2025-01-01&end_at=2025-01-01" +
			"&displayed_from=2024-12-15&displayed_until=2025-02-01"
		ctx, rec := newPromotionCtx(e, http.MethodPost, body)
		require.NoError(t, CreatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), msgWrongDates)
	})

	t.Run("display period inverted", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		body := "name=Offre&description=d" +
			"&start_at=2025-01-01&end_at=2025-02-01" +
			"&displayed_from=2025-02-01&displayed_until=2024-12-15"
		ctx, rec := newPromotionCtx(e, http.MethodPost, body)
		require.NoError(t, CreatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), msgWrongDates)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getCategoryByID = func(_ context.Context, _ database.Querier, id int) (*model.ServiceCategory, error) {
			require.Equal(t, 99, id)
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newPromotionCtx(e, http.MethodPost, validForm()+"&service_category_id=99")
		require.NoError(t, CreatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "this category does not exist")
	})

	t.Run("no provider profile", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getProviderByUserID = func(_ context.Context, _ database.Querier, userID int) (*model.Provider, error) {
			require.Equal(t, 30, userID)
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newPromotionCtx(e, http.MethodPost, validForm())
		require.NoError(t, CreatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), msgPageNotFound)
	})

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getProviderByUserID = func(_ context.Context, _ database.Querier, _ int) (*model.Provider, error) {
			return &model.Provider{ID: 7, UserID: 30}, nil
		}
		var created *model.Promotion
		createPromotion = func(_ context.Context, _ database.Querier, p *model.Promotion) (*model.Promotion, error) {
			p.ID = 11
			created = p
			return p, nil
		}
		ctx, rec := newPromotionCtx(e, http.MethodPost, validForm())
		require.NoError(t, CreatePromotionHandler(db, &service.FakeStorage{})(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), `"provider_id":7`)
		require.Contains(t, rec.Body.String(), `"start_at":"2025-01-01"`)
		require.Equal(t, 7, created.ProviderID)
	})
}

func TestUpdatePromotionHandler(t *testing.T) {
	e := echo.New()
	db := &database.FakeDB{}

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newIDCtx(e, http.MethodPut, "abc", validForm())
		require.NoError(t, UpdatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), msgPageNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getPromotionByID = func(_ context.Context, _ database.Querier, _ int) (*model.Promotion, error) {
			return &model.Promotion{ID: 3, ProviderID: 99}, nil
		}
		getProviderByUserID = func(_ context.Context, _ database.Querier, _ int) (*model.Provider, error) {
			return &model.Provider{ID: 7, UserID: 30}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "3", validForm())
		require.NoError(t, UpdatePromotionHandler(db, nil)(ctx))
		// 非擁有者與不存在回覆相同，避免洩漏他人促銷
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), msgPageNotFound)
	})

	t.Run("missing promotion", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getPromotionByID = func(_ context.Context, _ database.Querier, _ int) (*model.Promotion, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "3", validForm())
		require.NoError(t, UpdatePromotionHandler(db, nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), msgPageNotFound)
	})

	t.Run("ok keeps pdf", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		pdf := "old.pdf"
		getPromotionByID = func(_ context.Context, _ database.Querier, id int) (*model.Promotion, error) {
			require.Equal(t, 3, id)
			return &model.Promotion{ID: 3, ProviderID: 7, PDFDocument: &pdf}, nil
		}
		getProviderByUserID = func(_ context.Context, _ database.Querier, _ int) (*model.Provider, error) {
			return &model.Provider{ID: 7, UserID: 30}, nil
		}
		var updated *model.Promotion
		updatePromotion = func(_ context.Context, _ database.Querier, p *model.Promotion) error {
			updated = p
			return nil
		}
		ctx, rec := newIDCtx(e, http.MethodPut, "3", validForm())
		require.NoError(t, UpdatePromotionHandler(db, &service.FakeStorage{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 3, updated.ID)
		require.Equal(t, 7, updated.ProviderID)
		require.Equal(t, "old.pdf", *updated.PDFDocument)
	})
}

func TestDeletePromotionHandler(t *testing.T) {
	e := echo.New()
	db := &database.FakeDB{}

	t.Run("not owner", func(t *testing.T) {
		t.Cleanup(restore)
		getPromotionByID = func(_ context.Context, _ database.Querier, _ int) (*model.Promotion, error) {
			return &model.Promotion{ID: 3, ProviderID: 99}, nil
		}
		getProviderByUserID = func(_ context.Context, _ database.Querier, _ int) (*model.Provider, error) {
			return &model.Provider{ID: 7}, nil
		}
		ctx, rec := newIDCtx(e, http.MethodDelete, "3", "")
		require.NoError(t, DeletePromotionHandler(db)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		getPromotionByID = func(_ context.Context, _ database.Querier, _ int) (*model.Promotion, error) {
			return &model.Promotion{ID: 3, ProviderID: 7}, nil
		}
		getProviderByUserID = func(_ context.Context, _ database.Querier, _ int) (*model.Provider, error) {
			return &model.Provider{ID: 7}, nil
		}
		deleted := 0
		deletePromotion = func(_ context.Context, _ database.Querier, id int) error {
			require.Equal(t, 3, id)
			deleted++
			return nil
		}
		ctx, rec := newIDCtx(e, http.MethodDelete, "3", "")
		require.NoError(t, DeletePromotionHandler(db)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, 1, deleted)
	})
}

func TestListProviderPromotionsHandler(t *testing.T) {
	e := echo.New()
	db := &database.FakeDB{}

	t.Run("bad id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetPath("/api/providers/:id/promotions")
		ctx.SetParamNames("id")
		ctx.SetParamValues("abc")
		require.NoError(t, ListProviderPromotionsHandler(db)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ok", func(t *testing.T) {
		t.Cleanup(restore)
		listPromotions = func(_ context.Context, _ database.Querier, providerID int) ([]model.Promotion, error) {
			require.Equal(t, 7, providerID)
			return []model.Promotion{{ID: 1, Name: "Offre", ProviderID: 7}}, nil
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)
		ctx.SetPath("/api/providers/:id/promotions")
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, ListProviderPromotionsHandler(db)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Offre")
	})
}
