// File: internal/handler/categories/category.go
package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"annuary/internal/api"
	"annuary/internal/cache"
	"annuary/internal/database"
	"annuary/internal/model"
	"annuary/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listCategories    = store.ListCategories
	highlightCategory = store.HighlightCategory
)

// ListCategoriesHandler 列出所有分類（選單用）
// 結果以 category tag 快取，highlight 異動時整組失效
// @Summary     List service categories
// @Tags        categories
// @Produce     json
// @Success     200 {array}  api.CategoryResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /categories [get]
func ListCategoriesHandler(db database.DB, categories *cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		raw, err := categories.Get(ctx, cache.KeySubMenuCategory, []string{cache.TagCategory}, func(ctx context.Context) (string, error) {
			list, err := listCategories(ctx, db)
			if err != nil {
				return "", err
			}
			b, err := json.Marshal(categoryResponses(list))
			if err != nil {
				return "", err
			}
			return string(b), nil
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSONBlob(http.StatusOK, []byte(raw))
	}
}

// HighlightCategoryHandler 將分類設為本月分類
// @Summary     Highlight a category
// @Description 以交易清除其他分類的旗標並設定指定分類，成功後使分類快取失效
// @Tags        categories
// @Param       id path int true "分類 id"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /categories/{id}/highlight [post]
func HighlightCategoryHandler(db database.DB, categories *cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		categoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}

		ctx := c.Request().Context()
		tx, err := db.Begin(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		defer tx.Rollback(ctx)

		if err := highlightCategory(ctx, tx, categoryID); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := tx.Commit(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if err := categories.Invalidate(ctx, cache.TagCategory); err != nil {
			c.Logger().Errorf("invalidating category cache failed: %v", err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func categoryResponses(list []model.ServiceCategory) []api.CategoryResponse {
	resp := make([]api.CategoryResponse, 0, len(list))
	for _, cat := range list {
		resp = append(resp, api.CategoryResponse{
			ID:          cat.ID,
			Name:        cat.Name,
			Validated:   cat.Validated,
			Highlighted: cat.Highlighted,
		})
	}
	return resp
}
