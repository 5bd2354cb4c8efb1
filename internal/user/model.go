// File: internal/user/model.go
package user

import (
	"time"

	"clinic_backend/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the identity store. A single email may map to
// records under different roles; identity resolution keys on (email, role).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         common.Role        `bson:"role" json:"role"`
	Specialty    string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

func (u *User) GetID() string {
	return u.ID.Hex()
}

func (u *User) GetEmail() string {
	return u.Email
}

func (u *User) GetRole() common.Role {
	return u.Role
}

// --- DTOs for API requests/responses ---

// CreateStaffRequest defines the admin-gated creation of doctor/admin accounts.
type CreateStaffRequest struct {
	Name      string `form:"name" binding:"required,max=100"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=8,max=72"`
	Role      string `form:"role" binding:"required,oneof=doctor admin"`
	Specialty string `form:"specialty" binding:"omitempty,max=100"`
}

// UserResponse defines the structure for user data sent in API responses.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      common.Role `json:"role"`
	Specialty string      `json:"specialty,omitempty"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ToUserResponse converts a User model to a UserResponse DTO. The credential
// secret never crosses this boundary.
func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Specialty: u.Specialty,
		Image:     u.Image,
		CreatedAt: u.CreatedAt,
	}
}
