package api

import "time"

// swagger:model api.ProviderResponse
type ProviderResponse struct {
	ID           int       `json:"id" example:"7"`
	Name         string    `json:"name" example:"Zen Spa"`
	Description  string    `json:"description"`
	Logo         string    `json:"logo" example:"default.png"`
	RegisteredOn time.Time `json:"registered_on,omitempty"`
}

// ProviderListResponse 是分頁列表的外層，total 供頁數計算
// swagger:model api.ProviderListResponse
type ProviderListResponse struct {
	Items   []ProviderResponse `json:"items"`
	Total   int                `json:"total" example:"42"`
	PerPage int                `json:"per_page" example:"10"`
}

// swagger:model api.ProviderSuggestionResponse
type ProviderSuggestionResponse struct {
	ID          int    `json:"id" example:"7"`
	Name        string `json:"name" example:"Zen Spa"`
	Description string `json:"description"`
}
