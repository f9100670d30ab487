package api

// PromotionRequest 的日期欄位為 YYYY-MM-DD，區間檢查在 handler 內執行
// swagger:model api.PromotionRequest
type PromotionRequest struct {
	Name              string `form:"name" validate:"required" example:"Offre d'hiver"`
	Description       string `form:"description" validate:"required" example:"-20% sur les massages"`
	StartAt           string `form:"start_at" validate:"required,datetime=2006-01-02" example:"2025-01-01"`
	EndAt             string `form:"end_at" validate:"required,datetime=2006-01-02" example:"2025-02-01"`
	DisplayedFrom     string `form:"displayed_from" validate:"required,datetime=2006-01-02" example:"2024-12-15"`
	DisplayedUntil    string `form:"displayed_until" validate:"required,datetime=2006-01-02" example:"2025-02-01"`
	ServiceCategoryID *int   `form:"service_category_id" example:"2"`
}
