package api

// SearchRequest 的條件皆為可選，page 從 1 起算
// swagger:model api.SearchRequest
type SearchRequest struct {
	What     string `query:"what" example:"massage"`
	Where    string `query:"where" example:"Namur"`
	Category int    `query:"category" example:"2"`
	Page     int    `query:"page" example:"1"`
}
