// File: internal/handler/registration/verify.go
package registration

import (
	"net/http"
	"strconv"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/service"
	"annuary/internal/store"

	"github.com/labstack/echo/v4"
)

const msgBadLink = "this link is not correct, please register again"

var (
	getUserByID               = store.GetUserByID
	validateVerificationToken = service.ValidateVerificationToken
	markUserVerified          = store.MarkUserVerified
)

// VerifyEmailHandler 透過簽名連結驗證 email
// @Summary     Verify email address
// @Description 驗證寄出的簽名連結並將帳號標記為已驗證；重複驗證無害
// @Tags        registration
// @Produce     json
// @Param       id    query int    true "使用者 id"
// @Param       token query string true "簽名令牌"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /verify/email [get]
func VerifyEmailHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		idParam := c.QueryParam("id")
		if idParam == "" {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgBadLink})
		}
		userID, err := strconv.Atoi(idParam)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msgBadLink})
		}

		user, err := getUserByID(c.Request().Context(), db, userID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgBadLink})
		}

		if err := validateVerificationToken(c.QueryParam("token"), *user); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		if err := markUserVerified(c.Request().Context(), db, user.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.MessageResponse{Message: "your account has been verified, you can now log in"})
	}
}
