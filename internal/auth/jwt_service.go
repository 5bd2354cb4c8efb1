// File: internal/auth/jwt_service.go
package auth

import (
	"fmt"
	"time"

	"clinic_backend/internal/common"
	"clinic_backend/internal/config"
	"clinic_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService issues and validates HS256 session tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

var _ shared.TokenService = (*JWTService)(nil)

// NewJWTService creates a new token service from configuration.
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTTokenTTL,
	}
}

// GenerateToken creates a signed session token for the given user.
func (s *JWTService) GenerateToken(userData shared.UserDataForToken) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.ttl)
	claims := &shared.Claims{
		UserID: userData.GetID(),
		Email:  userData.GetEmail(),
		Role:   userData.GetRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a session token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if _, ok := common.ParseRole(claims.Role.String()); !ok {
		return nil, fmt.Errorf("token carries unknown role %q", claims.Role)
	}
	return claims, nil
}
