package api

// CommentRequest 是 provider 頁面留言的表單欄位
// swagger:model api.CommentRequest
type CommentRequest struct {
	Content string `form:"content" validate:"required" example:"Très bon accueil, je recommande."`
}
