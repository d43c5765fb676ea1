package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest represents a registration request. Accounts register as
// buyer or farmer; admin accounts are provisioned out of band.
type RegisterRequest struct {
	Name            string  `json:"name" binding:"required,min=2,max=255"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,eqfield=Password"`
	Role            string  `json:"role" binding:"required,oneof=buyer farmer"`
	Location        *string `json:"location" binding:"omitempty,max=255"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
