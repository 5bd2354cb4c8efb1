// File: internal/common/context.go
package common

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// UserEmailKey is the context key for storing the authenticated user's email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for storing the authenticated user's role
	UserRoleKey = "userRole"
)

// GetUserIDFromContext retrieves the authenticated user's ID (ObjectID hex)
// from the Gin context. Returns an empty string if not present.
func GetUserIDFromContext(c *gin.Context) string {
	val, exists := c.Get(UserIDKey)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

// GetUserObjectIDFromContext retrieves the authenticated user's ID as a Mongo
// ObjectID. Returns primitive.NilObjectID if absent or malformed.
func GetUserObjectIDFromContext(c *gin.Context) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(GetUserIDFromContext(c))
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin
// context. Returns an empty role if absent or outside the known set.
func GetUserRoleFromContext(c *gin.Context) Role {
	val, exists := c.Get(UserRoleKey)
	if !exists {
		return ""
	}
	raw, ok := val.(string)
	if !ok {
		return ""
	}
	role, ok := ParseRole(raw)
	if !ok {
		return ""
	}
	return role
}
