// File: internal/handler/search.go
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/model"
	"annuary/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	searchProviders = store.SearchProviders
	findByCategory  = store.FindByCategory
	findSimilar     = store.FindSimilar
	autoComplete    = store.AutoComplete
	getProviderByID = store.GetProviderByID
)

// pageOffset 將 1 起算的頁碼轉為列位移
func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * store.ProvidersPerPage
}

// SearchProvidersHandler 搜尋 provider
// @Summary     Search providers
// @Description 依自由字串、分類與地區搜尋已驗證的 provider，依名稱排序
// @Tags        providers
// @Produce     json
// @Param       what     query string false "名稱或描述的子字串"
// @Param       where    query string false "地區、市鎮或郵遞區號"
// @Param       category query int    false "分類 id"
// @Param       page     query int    false "頁碼，從 1 起算"
// @Success     200 {object} api.ProviderListResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/search [get]
func SearchProvidersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SearchRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid query parameters"})
		}

		listings, total, err := searchProviders(c.Request().Context(), db, store.SearchParams{
			What:     req.What,
			Where:    req.Where,
			Category: req.Category,
			Offset:   pageOffset(req.Page),
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ProviderListResponse{
			Items:   listingResponses(listings),
			Total:   total,
			PerPage: store.ProvidersPerPage,
		})
	}
}

// ByCategoryHandler 分類下的 provider
// @Summary     Providers of a category
// @Description 回傳分類下已驗證的 provider，依註冊時間遞減
// @Tags        providers
// @Produce     json
// @Param       id   path  int true  "分類 id"
// @Param       page query int false "頁碼，從 1 起算"
// @Success     200 {object} api.ProviderListResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /categories/{id}/providers [get]
func ByCategoryHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		categoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid category ID"})
		}
		page, _ := strconv.Atoi(c.QueryParam("page"))

		listings, total, err := findByCategory(c.Request().Context(), db, categoryID, pageOffset(page))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ProviderListResponse{
			Items:   listingResponses(listings),
			Total:   total,
			PerPage: store.ProvidersPerPage,
		})
	}
}

// LastSubscribersHandler 最近註冊的 provider
// @Summary     Last subscribed providers
// @Tags        providers
// @Produce     json
// @Param       page query int false "頁碼，從 1 起算"
// @Success     200 {object} api.ProviderListResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/last [get]
func LastSubscribersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))

		listings, total, err := lastSubscribers(c.Request().Context(), db, pageOffset(page), store.ProvidersPerPage)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.ProviderListResponse{
			Items:   listingResponses(listings),
			Total:   total,
			PerPage: store.ProvidersPerPage,
		})
	}
}

// GetProviderHandler 讀取單一 provider
// @Summary     Get a provider by ID
// @Tags        providers
// @Produce     json
// @Param       id path int true "provider id"
// @Success     200 {object} api.ProviderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/{id} [get]
func GetProviderHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		providerID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid provider ID"})
		}
		provider, err := getProviderByID(c.Request().Context(), db, providerID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "provider not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.ProviderResponse{
			ID:          provider.ID,
			Name:        provider.Name,
			Description: provider.Description,
			Logo:        provider.Logo,
		})
	}
}

// SimilarProvidersHandler 相似的 provider
// @Summary     Similar providers
// @Description 回傳同市鎮且至少共享一個分類的其他已驗證 provider
// @Tags        providers
// @Produce     json
// @Param       id path int true "provider id"
// @Success     200 {array}  api.ProviderResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/{id}/similar [get]
func SimilarProvidersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		providerID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid provider ID"})
		}
		if _, err := getProviderByID(c.Request().Context(), db, providerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "provider not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		providers, err := findSimilar(c.Request().Context(), db, providerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, providerResponses(providers))
	}
}

// AutoCompleteHandler 搜尋欄自動完成
// @Summary     Autocomplete providers
// @Description 依名稱或描述提出最多 10 筆建議
// @Tags        providers
// @Produce     json
// @Param       q query string true "搜尋字串"
// @Success     200 {array}  api.ProviderSuggestionResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/autocomplete [get]
func AutoCompleteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.QueryParam("q")
		if query == "" {
			return c.JSON(http.StatusOK, []api.ProviderSuggestionResponse{})
		}

		suggestions, err := autoComplete(c.Request().Context(), db, query)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.ProviderSuggestionResponse, 0, len(suggestions))
		for _, s := range suggestions {
			resp = append(resp, api.ProviderSuggestionResponse{
				ID:          s.ID,
				Name:        s.Name,
				Description: s.Description,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func providerResponses(providers []model.Provider) []api.ProviderResponse {
	resp := make([]api.ProviderResponse, 0, len(providers))
	for _, p := range providers {
		resp = append(resp, api.ProviderResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Logo:        p.Logo,
		})
	}
	return resp
}
