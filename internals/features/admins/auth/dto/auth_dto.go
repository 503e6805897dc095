package dto

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=80"`
	Password string `json:"password" form:"password" validate:"required"`
}
