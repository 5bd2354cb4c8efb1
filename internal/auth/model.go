// File: internal/auth/model.go
package auth

// RegisterRequest defines the structure for registration requests.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest defines the structure for login requests.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries the externally-issued Google ID token.
type GoogleSignInRequest struct {
	Token string `json:"token" binding:"required"`
}
