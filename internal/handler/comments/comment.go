// File: internal/handler/comments/comment.go
package comments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	getProviderByID     = store.GetProviderByID
	getCustomerByUserID = store.GetCustomerByUserID
	createComment       = store.CreateComment
	listComments        = store.ListCommentsByProvider
)

// ListProviderCommentsHandler 列出 provider 頁面的留言（公開）
// @Summary     List comments of a provider
// @Description 回傳 provider 收到的留言，新的在前
// @Tags        comments
// @Produce     json
// @Param       id path int true "provider id"
// @Success     200 {array}  api.CommentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/{id}/comments [get]
func ListProviderCommentsHandler(db database.DB) echo.HandlerFunc {
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

		comments, err := listComments(c.Request().Context(), db, providerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.CommentResponse, 0, len(comments))
		for _, cm := range comments {
			resp = append(resp, commentResponse(cm))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// CreateCommentHandler 在 provider 頁面留言
// @Summary     Comment on a provider
// @Description 以當前 customer 的身分在 provider 頁面留言
// @Tags        comments
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       id      path     int    true "provider id"
// @Param       content formData string true "留言內容"
// @Success     201 {object} api.CommentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /providers/{id}/comments [post]
func CreateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		providerID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid provider ID"})
		}

		var req api.CommentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		claims := middleware.CurrentClaims(c)
		customer, err := getCustomerByUserID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgPageNotFound})
		}
		if _, err := getProviderByID(c.Request().Context(), db, providerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "provider not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		comment := &model.Comment{
			Content:    req.Content,
			CustomerID: customer.ID,
			ProviderID: providerID,
		}
		if _, err := createComment(c.Request().Context(), db, comment); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, commentResponse(*comment))
	}
}

func commentResponse(cm model.Comment) api.CommentResponse {
	return api.CommentResponse{
		ID:         cm.ID,
		Content:    cm.Content,
		CreatedAt:  cm.CreatedAt.Format(time.RFC3339),
		CustomerID: cm.CustomerID,
		ProviderID: cm.ProviderID,
	}
}
