// File: internal/handler/locality.go
package handler

import (
	"net/http"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/store"

	"github.com/labstack/echo/v4"
)

var listLocalities = store.ListLocalities

// ListLocalitiesHandler 地區清單
// @Summary     List localities
// @Description 回傳所有地區供註冊表單選擇，依名稱排序
// @Tags        localities
// @Produce     json
// @Success     200 {array}  api.LocalityResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /localities [get]
func ListLocalitiesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		localities, err := listLocalities(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.LocalityResponse, 0, len(localities))
		for _, l := range localities {
			resp = append(resp, api.LocalityResponse{
				ID:         l.ID,
				Name:       l.Name,
				PostCodeID: l.PostCodeID,
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
