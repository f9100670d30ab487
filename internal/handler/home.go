// File: internal/handler/home.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"annuary/internal/api"
	"annuary/internal/cache"
	"annuary/internal/database"
	"annuary/internal/model"
	"annuary/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	getHighlightedCategory    = store.GetHighlightedCategory
	getFirstValidatedCategory = store.GetFirstValidatedCategory
	lastSubscribers           = store.LastSubscribers
)

// homeSubscribers 是首頁顯示的最近註冊數
const homeSubscribers = 4

// categoryOfTheMonth 取本月分類：優先 highlighted，否則第一筆 validated
// 結果以 category tag 快取，分類異動時整組失效
func categoryOfTheMonth(ctx context.Context, db database.DB, categories *cache.Store) (*model.ServiceCategory, error) {
	raw, err := categories.Get(ctx, cache.KeyCategoryOfTheMonth, []string{cache.TagCategory}, func(ctx context.Context) (string, error) {
		category, err := getHighlightedCategory(ctx, db)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return "", err
			}
			category, err = getFirstValidatedCategory(ctx, db)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return "null", nil
				}
				return "", err
			}
		}
		b, err := json.Marshal(category)
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
	if err != nil {
		return nil, err
	}
	var category *model.ServiceCategory
	if err := json.Unmarshal([]byte(raw), &category); err != nil {
		return nil, err
	}
	return category, nil
}

// HomeHandler 首頁資料
// @Summary     Home page data
// @Description 回傳本月分類與最近註冊的 provider
// @Tags        home
// @Produce     json
// @Success     200 {object} api.HomeResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /home [get]
func HomeHandler(db database.DB, categories *cache.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		category, err := categoryOfTheMonth(ctx, db, categories)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		subscribers, _, err := lastSubscribers(ctx, db, 0, homeSubscribers)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := api.HomeResponse{LastSubscribers: listingResponses(subscribers)}
		if category != nil {
			resp.CategoryOfTheMonth = &api.CategoryResponse{
				ID:          category.ID,
				Name:        category.Name,
				Validated:   category.Validated,
				Highlighted: category.Highlighted,
			}
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func listingResponses(listings []model.ProviderListing) []api.ProviderResponse {
	resp := make([]api.ProviderResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, api.ProviderResponse{
			ID:           l.ID,
			Name:         l.Name,
			Description:  l.Description,
			Logo:         l.Logo,
			RegisteredOn: l.RegisteredOn,
		})
	}
	return resp
}
