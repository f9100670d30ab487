package api

// HomeResponse 是首頁資料：本月分類與最近註冊的 provider
// swagger:model api.HomeResponse
type HomeResponse struct {
	CategoryOfTheMonth *CategoryResponse  `json:"category_of_the_month,omitempty"`
	LastSubscribers    []ProviderResponse `json:"last_subscribers"`
}
