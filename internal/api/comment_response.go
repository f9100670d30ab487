package api

// swagger:model api.CommentResponse
type CommentResponse struct {
	ID         int    `json:"id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at" example:"2025-03-01T10:00:00Z"`
	CustomerID int    `json:"customer_id"`
	ProviderID int    `json:"provider_id"`
}
