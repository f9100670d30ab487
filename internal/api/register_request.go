package api

// RegisterCustomerRequest 是 /register/customer 的 multipart 表單欄位
// swagger:model api.RegisterCustomerRequest
type RegisterCustomerRequest struct {
	Email           string `form:"email" validate:"required,email" example:"alice@example.com"`
	Password        string `form:"password" validate:"required,min=6" example:"Secret123!"`
	ConfirmPassword string `form:"confirm_password" validate:"required" example:"Secret123!"`
	FirstName       string `form:"first_name" validate:"required" example:"Alice"`
	LastName        string `form:"last_name" validate:"required" example:"Dupont"`
	Newsletter      bool   `form:"newsletter" example:"true"`
	LocalityID      int    `form:"locality_id" validate:"required" example:"3"`
}

// RegisterProviderRequest 是 /register/provider 的 multipart 表單欄位
// swagger:model api.RegisterProviderRequest
type RegisterProviderRequest struct {
	Email           string `form:"email" validate:"required,email" example:"contact@spa.example"`
	Password        string `form:"password" validate:"required,min=6" example:"Secret123!"`
	ConfirmPassword string `form:"confirm_password" validate:"required" example:"Secret123!"`
	Name            string `form:"name" validate:"required" example:"Zen Spa"`
	Description     string `form:"description" validate:"required" example:"Massages et soins"`
	LocalityID      int    `form:"locality_id" validate:"required" example:"3"`
	CategoryIDs     []int  `form:"category_ids" example:"1,4"`
}
