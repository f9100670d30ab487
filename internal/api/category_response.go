package api

// swagger:model api.CategoryResponse
type CategoryResponse struct {
	ID          int    `json:"id" example:"2"`
	Name        string `json:"name" example:"Massage"`
	Validated   bool   `json:"validated" example:"true"`
	Highlighted bool   `json:"highlighted" example:"false"`
}
