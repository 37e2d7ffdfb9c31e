package request

type RegisterRequest struct {
	Email     string  `json:"email" binding:"required"`
	FirstName string  `json:"first_name" binding:"required"`
	LastName  string  `json:"last_name" binding:"required"`
	BirthDate *string `json:"birth_date,omitempty"` // DD.MM.YYYY
	Phone     string  `json:"phone" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Photo     *string `json:"photo,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
}

type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type ResendCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
