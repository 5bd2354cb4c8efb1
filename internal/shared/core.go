// File: internal/shared/core.go
package shared

import (
	"time"

	"clinic_backend/internal/common"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims structure.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   common.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserDataForToken abstracts the user data needed for token generation.
type UserDataForToken interface {
	GetID() string
	GetEmail() string
	GetRole() common.Role
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	GenerateToken(userData UserDataForToken) (string, time.Time, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenResponse represents the response containing a session token.
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}
