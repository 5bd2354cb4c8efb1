// File: internal/doctor/model.go
package doctor

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor represents a doctor profile in the directory store.
type Doctor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Specialty    string             `bson:"specialty" json:"specialty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Timings      string             `bson:"timings,omitempty" json:"timings,omitempty"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// --- DTOs ---

// CreateDoctorRequest defines the multipart form for admin doctor creation.
type CreateDoctorRequest struct {
	Name      string `form:"name" binding:"required,max=100"`
	Email     string `form:"email" binding:"required,email"`
	Phone     string `form:"phone" binding:"required,max=30"`
	Password  string `form:"password" binding:"required,min=8,max=72"`
	Specialty string `form:"specialty" binding:"required,max=100"`
	Timings   string `form:"timings" binding:"omitempty,max=200"`
}

// UpdateDoctorRequest applies a partial update; omitted fields keep their
// prior value and an empty password leaves the credential untouched.
type UpdateDoctorRequest struct {
	Name      *string `form:"name" binding:"omitempty,max=100"`
	Email     *string `form:"email" binding:"omitempty,email"`
	Phone     *string `form:"phone" binding:"omitempty,max=30"`
	Password  *string `form:"password" binding:"omitempty,max=72"`
	Specialty *string `form:"specialty" binding:"omitempty,max=100"`
	Timings   *string `form:"timings" binding:"omitempty,max=200"`
}
