// File: internal/handler/promotions/promotion.go
package promotions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"annuary/internal/api"
	"annuary/internal/database"
	"annuary/internal/middleware"
	"annuary/internal/model"
	"annuary/internal/service"
	"annuary/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

const (
	// msgWrongDates：兩組日期區間皆須嚴格遞增
	msgWrongDates   = "please correct the dates, each period must start before it ends"
	msgPageNotFound = "this page does not exist"

	dateLayout = "2006-01-02"
)

var (
	getProviderByUserID = store.GetProviderByUserID
	getPromotionByID    = store.GetPromotionByID
	getCategoryByID     = store.GetCategoryByID
	createPromotion     = store.CreatePromotion
	updatePromotion     = store.UpdatePromotion
	deletePromotion     = store.DeletePromotion
	listPromotions      = store.ListPromotionsByProvider
)

// bindPromotion 綁定表單、驗證並解析日期；日期區間不合法時回傳 msgWrongDates
func bindPromotion(c echo.Context, db database.DB) (*model.Promotion, error) {
	var req api.PromotionRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ServiceCategoryID != nil {
		if _, err := getCategoryByID(c.Request().Context(), db, *req.ServiceCategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "this category does not exist")
			}
			return nil, err
		}
	}

	// validator 的 datetime tag 已確認格式，這裡的 Parse 不會失敗
	startAt, _ := time.Parse(dateLayout, req.StartAt)
	endAt, _ := time.Parse(dateLayout, req.EndAt)
	displayedFrom, _ := time.Parse(dateLayout, req.DisplayedFrom)
	displayedUntil, _ := time.Parse(dateLayout, req.DisplayedUntil)

	promotion := &model.Promotion{
		Name:              req.Name,
		Description:       req.Description,
		StartAt:           startAt,
		EndAt:             endAt,
		DisplayedFrom:     displayedFrom,
		DisplayedUntil:    displayedUntil,
		ServiceCategoryID: req.ServiceCategoryID,
	}
	if !promotion.DatesValid() {
		return nil, echo.NewHTTPError(http.StatusBadRequest, msgWrongDates)
	}
	return promotion, nil
}

// attachPDF 儲存可選的 PDF 附件
func attachPDF(c echo.Context, files service.FileStorage, promotion *model.Promotion) error {
	file, err := c.FormFile("pdf")
	if err != nil {
		return nil
	}
	name, err := files.Save(c.Request().Context(), "pdf", file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "the document could not be stored")
	}
	promotion.PDFDocument = &name
	return nil
}

func httpError(c echo.Context, err error) error {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
	}
	return c.JSON(he.Code, api.ErrorResponse{Message: he.Message.(string)})
}

// CreatePromotionHandler 新增促銷
// @Summary     Create a promotion
// @Description 為當前 provider 新增促銷，日期區間須嚴格遞增
// @Tags        promotions
// @Accept      multipart/form-data
// @Produce     json
// @Param       name            formData string true "促銷名稱"
// @Param       description     formData string true "說明"
// @Param       start_at        formData string true "有效起始日 YYYY-MM-DD"
// @Param       end_at          formData string true "有效結束日 YYYY-MM-DD"
// @Param       displayed_from  formData string true "顯示起始日 YYYY-MM-DD"
// @Param       displayed_until formData string true "顯示結束日 YYYY-MM-DD"
// @Param       pdf             formData file   false "PDF 附件"
// @Success     201 {object} api.PromotionResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /promotions [post]
func CreatePromotionHandler(db database.DB, files service.FileStorage) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.CurrentClaims(c)

		promotion, err := bindPromotion(c, db)
		if err != nil {
			return httpError(c, err)
		}

		provider, err := getProviderByUserID(c.Request().Context(), db, claims.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: msgPageNotFound})
		}
		promotion.ProviderID = provider.ID

		if err := attachPDF(c, files, promotion); err != nil {
			return httpError(c, err)
		}

		if _, err := createPromotion(c.Request().Context(), db, promotion); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, promotionResponse(promotion))
	}
}

// ownedPromotion 取出促銷並確認屬於當前使用者的 provider
// 不存在與非擁有者刻意回傳相同結果，不洩漏他人促銷是否存在
func ownedPromotion(c echo.Context, db database.DB) (*model.Promotion, *model.Provider, error) {
	claims := middleware.CurrentClaims(c)

	promotionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, msgPageNotFound)
	}
	promotion, err := getPromotionByID(c.Request().Context(), db, promotionID)
	if err != nil {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, msgPageNotFound)
	}
	provider, err := getProviderByUserID(c.Request().Context(), db, claims.UserID)
	if err != nil || promotion.ProviderID != provider.ID {
		return nil, nil, echo.NewHTTPError(http.StatusNotFound, msgPageNotFound)
	}
	return promotion, provider, nil
}

// UpdatePromotionHandler 修改促銷
// @Summary     Update a promotion
// @Description 只有促銷的擁有者可修改，日期規則與新增相同
// @Tags        promotions
// @Accept      multipart/form-data
// @Produce     json
// @Param       id path int true "促銷 id"
// @Success     200 {object} api.PromotionResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /promotions/{id} [put]
func UpdatePromotionHandler(db database.DB, files service.FileStorage) echo.HandlerFunc {
	return func(c echo.Context) error {
		existing, _, err := ownedPromotion(c, db)
		if err != nil {
			return httpError(c, err)
		}

		promotion, err := bindPromotion(c, db)
		if err != nil {
			return httpError(c, err)
		}
		promotion.ID = existing.ID
		promotion.ProviderID = existing.ProviderID
		promotion.PDFDocument = existing.PDFDocument

		if err := attachPDF(c, files, promotion); err != nil {
			return httpError(c, err)
		}

		if err := updatePromotion(c.Request().Context(), db, promotion); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, promotionResponse(promotion))
	}
}

// DeletePromotionHandler 刪除促銷
// @Summary     Delete a promotion
// @Description 只有促銷的擁有者可刪除
// @Tags        promotions
// @Param       id path int true "促銷 id"
// @Success     204 "No Content"
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /promotions/{id} [delete]
func DeletePromotionHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		promotion, _, err := ownedPromotion(c, db)
		if err != nil {
			return httpError(c, err)
		}
		if err := deletePromotion(c.Request().Context(), db, promotion.ID); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// ListProviderPromotionsHandler 列出 provider 的促銷（公開）
// @Summary     List promotions of a provider
// @Tags        promotions
// @Produce     json
// @Param       id path int true "provider id"
// @Success     200 {array}  api.PromotionResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /providers/{id}/promotions [get]
func ListProviderPromotionsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		providerID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid provider ID"})
		}
		promotions, err := listPromotions(c.Request().Context(), db, providerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.PromotionResponse, 0, len(promotions))
		for i := range promotions {
			resp = append(resp, promotionResponse(&promotions[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

func promotionResponse(p *model.Promotion) api.PromotionResponse {
	resp := api.PromotionResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		StartAt:           p.StartAt.Format(dateLayout),
		EndAt:             p.EndAt.Format(dateLayout),
		DisplayedFrom:     p.DisplayedFrom.Format(dateLayout),
		DisplayedUntil:    p.DisplayedUntil.Format(dateLayout),
		ProviderID:        p.ProviderID,
		ServiceCategoryID: p.ServiceCategoryID,
	}
	if p.PDFDocument != nil {
		resp.PDFDocument = *p.PDFDocument
	}
	return resp
}
