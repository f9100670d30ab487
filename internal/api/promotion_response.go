package api

// swagger:model api.PromotionResponse
type PromotionResponse struct {
	ID                int    `json:"id" example:"1"`
	Name              string `json:"name" example:"Offre d'hiver"`
	Description       string `json:"description"`
	PDFDocument       string `json:"pdf_document,omitempty"`
	StartAt           string `json:"start_at" example:"2025-01-01"`
	EndAt             string `json:"end_at" example:"2025-02-01"`
	DisplayedFrom     string `json:"displayed_from" example:"2024-12-15"`
	DisplayedUntil    string `json:"displayed_until" example:"2025-02-01"`
	ProviderID        int    `json:"provider_id" example:"7"`
	ServiceCategoryID *int   `json:"service_category_id,omitempty"`
}
