package auth

// login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required,max=100"`
	Password string `json:"password" binding:"required" validate:"required,max=200"`
}
