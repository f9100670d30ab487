package api

// swagger:model api.RegisterResponse
type RegisterResponse struct {
	UserID  int    `json:"user_id" example:"1"`
	Logo    string `json:"logo" example:"default.png"`
	Warning string `json:"warning,omitempty"`
}
