// File: internal/handler/account/account.go
package account

import (
	"net/http"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/middleware"
	"annuary/internal/store"

	"github.com/labstack/echo/v4"
)

var deleteUser = store.DeleteUser

// DeleteAccountHandler 刪除當前使用者的帳號
// customer/provider 檔案與其留言、促銷、最愛由外鍵 cascade 一併清除
// @Summary     Delete the current account
// @Tags        account
// @Success     204 "No Content"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /account [delete]
func DeleteAccountHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)
		if err := deleteUser(c.Request().Context(), db, claims.UserID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
