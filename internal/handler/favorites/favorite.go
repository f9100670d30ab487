// File: internal/handler/favorites/favorite.go
package favorites

import (
	"errors"
	"net/http"
	"strconv"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/middleware"
	"annuary/internal/model"
	"annuary/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

const msgPageNotFound = "this page does not exist"

var (
	getCustomerByUserID = store.GetCustomerByUserID
	getProviderByID     = store.GetProviderByID
	addFavorite         = store.AddFavorite
	removeFavorite      = store.RemoveFavorite
	listFavorites       = store.ListFavorites
)

// currentCustomer 從 claims 解析出當前 customer；沒有 customer 檔案時回 404
func currentCustomer(c echo.Context, db database.DB) (*model.Customer, error) {
	claims := middleware.CurrentClaims(c)
	customer, err := getCustomerByUserID(c.Request().Context(), db, claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, msgPageNotFound)
	}
	return customer, nil
}

func httpError(c echo.Context, err error) error {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(he.Code, api.ErrorResponse{Message: he.Message.(string)})
}

// AddFavoriteHandler 將 provider 加入最愛
// @Summary     Add a provider to favorites
// @Description 重複加入同一 provider 不視為錯誤
// @Tags        favorites
// @Param       provider_id path int true "provider id"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /favorites/{provider_id} [post]
func AddFavoriteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		providerID, err := strconv.Atoi(c.Param("provider_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid provider ID"})
		}
		customer, err := currentCustomer(c, db)
		if err != nil {
			return httpError(c, err)
		}
		if _, err := getProviderByID(c.Request().Context(), db, providerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "provider not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		if err := addFavorite(c.Request().Context(), db, customer.ID, providerID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// RemoveFavoriteHandler 將 provider 移出最愛
// @Summary     Remove a provider from favorites
// @Description 關聯不存在時同樣回 204
// @Tags        favorites
// @Param       provider_id path int true "provider id"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /favorites/{provider_id} [delete]
func RemoveFavoriteHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		providerID, err := strconv.Atoi(c.Param("provider_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid provider ID"})
		}
		customer, err := currentCustomer(c, db)
		if err != nil {
			return httpError(c, err)
		}
		if err := removeFavorite(c.Request().Context(), db, customer.ID, providerID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ListFavoritesHandler 列出當前 customer 的最愛 provider
// @Summary     List favorite providers
// @Tags        favorites
// @Produce     json
// @Success     200 {array}  api.ProviderResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /favorites [get]
func ListFavoritesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		customer, err := currentCustomer(c, db)
		if err != nil {
			return httpError(c, err)
		}
		providers, err := listFavorites(c.Request().Context(), db, customer.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.ProviderResponse, 0, len(providers))
		for _, p := range providers {
			resp = append(resp, api.ProviderResponse{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Logo:        p.Logo,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
