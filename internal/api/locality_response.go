package api

// LocalityResponse 供註冊表單的地區下拉選單使用
// swagger:model api.LocalityResponse
type LocalityResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PostCodeID int    `json:"post_code_id"`
}
