// File: internal/appointment/model.go
package appointment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle state of an appointment. Cancelled is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a booking record. PatientID and DoctorID are non-owning
// references into the identity and directory stores.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Phone     string             `bson:"phone"`
	Email     string             `bson:"email"`
	PatientID primitive.ObjectID `bson:"patient"`
	DoctorID  primitive.ObjectID `bson:"doctor"`
	Date      time.Time          `bson:"date"`
	Status    Status             `bson:"status"`
	Notes     string             `bson:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// --- DTOs ---

// CreateRequest is the public booking request.
type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,max=30"`
	Date     string `json:"date" binding:"required"`
	DoctorID string `json:"doctorId" binding:"required"`
	Notes    string `json:"notes" binding:"omitempty,max=1000"`
}

// EditRequest applies a partial owner-only update.
type EditRequest struct {
	Date  *string `json:"date" binding:"omitempty"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Name  *string `json:"name" binding:"omitempty,max=100"`
}

// DoctorSummary is the doctor projection joined into responses. A deleted
// doctor resolves to a nil summary rather than an error.
type DoctorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
}

// PatientSummary is the patient projection joined into responses.
type PatientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EmailResults reports the per-recipient outcome of the best-effort booking
// notifications. Values are "sent" or "failed"; a failure never fails the
// booking itself.
type EmailResults struct {
	Doctor  string `json:"doctor,omitempty"`
	Patient string `json:"patient,omitempty"`
}

const (
	EmailOutcomeSent   = "sent"
	EmailOutcomeFailed = "failed"
)

// Response is the API projection of an appointment.
type Response struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Date      time.Time       `json:"date"`
	Status    Status          `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Doctor    *DoctorSummary  `json:"doctor"`
	Patient   *PatientSummary `json:"patient"`

	// EmailResults is only present on booking responses.
	EmailResults *EmailResults `json:"emailResults,omitempty"`
}
