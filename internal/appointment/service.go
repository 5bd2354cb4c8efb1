// File: internal/appointment/service.go
package appointment

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
	"clinic_backend/internal/doctor"
	"clinic_backend/internal/email"
	"clinic_backend/internal/platform/crypto"
	"clinic_backend/internal/user"
)

const notificationTimeout = 30 * time.Second

// Service defines the appointment booking workflow.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Cancel(ctx context.Context, idHex string, patientID primitive.ObjectID) (*Response, error)
	Edit(ctx context.Context, idHex string, patientID primitive.ObjectID, req EditRequest) (*Response, error)
	List(ctx context.Context, requesterID primitive.ObjectID, role common.Role, page, limit int) ([]Response, *common.Pagination, error)
	SendReminders(ctx context.Context, from, to time.Time) error
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo    Repository
	users   user.Repository
	doctors doctor.Repository
	sender  email.Sender
	logger  *zap.Logger
}

// NewService creates the appointment service.
func NewService(
	repo Repository,
	users user.Repository,
	doctors doctor.Repository,
	sender email.Sender,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		repo:    repo,
		users:   users,
		doctors: doctors,
		sender:  sender,
		logger:  logger.Named("AppointmentService"),
	}
}

// Create books an appointment for a possibly anonymous visitor. The patient
// account is found or created by email, the appointment is saved as pending,
// and both parties are notified. Notification failures are reported in the
// response but never fail the booking.
func (s *ServiceImplementation) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	doctorID, err := primitive.ObjectIDFromHex(req.DoctorID)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Invalid doctor ID format.")
	}

	doc, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Invalid date format. Use RFC 3339 or YYYY-MM-DD.")
	}

	patient, err := s.findOrCreatePatient(ctx, req)
	if err != nil {
		return nil, err
	}

	appt := &Appointment{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     patient.Email,
		PatientID: patient.ID,
		DoctorID:  doctorID,
		Date:      date,
		Status:    StatusPending,
		Notes:     req.Notes,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}

	resp := s.toResponse(appt, doc, patient)
	resp.EmailResults = s.notifyBooking(appt, doc)
	return resp, nil
}

// findOrCreatePatient looks up the patient account for the booking email and
// creates a placeholder one when none exists. An existing account gets its
// name refreshed from the booking form.
func (s *ServiceImplementation) findOrCreatePatient(ctx context.Context, req CreateRequest) (*user.User, error) {
	existing, err := s.users.FindByEmailAndRole(ctx, req.Email, common.RolePatient)
	if err == nil {
		if existing.Name != req.Name {
			existing.Name = req.Name
			if err := s.users.Update(ctx, existing); err != nil {
				s.logger.Warn("Failed to refresh patient name on booking",
					zap.String("patientId", existing.ID.Hex()), zap.Error(err))
			}
		}
		return existing, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	random, err := crypto.GenerateSecureRandomString(32)
	if err != nil {
		s.logger.Error("Failed to generate placeholder password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not create the patient account.")
	}
	hash, err := common.HashPassword(random)
	if err != nil {
		s.logger.Error("Failed to hash placeholder password", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not create the patient account.")
	}

	patient := &user.User{
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         common.RolePatient,
	}
	if err := s.users.Create(ctx, patient); err != nil {
		return nil, err
	}
	s.logger.Info("Created patient account from booking", zap.String("patientId", patient.ID.Hex()))
	return patient, nil
}

// notifyBooking sends the doctor notice and patient confirmation in parallel.
// The booking has already been committed, so a new context with its own
// deadline is used instead of the request context.
func (s *ServiceImplementation) notifyBooking(appt *Appointment, doc *doctor.Doctor) *EmailResults {
	details := email.BookingDetails{
		PatientName:  appt.Name,
		PatientEmail: appt.Email,
		PatientPhone: appt.Phone,
		DoctorName:   doc.Name,
		Specialty:    doc.Specialty,
		Date:         appt.Date,
	}

	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	results := &EmailResults{}
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		msg := email.DoctorBookingNotice(details)
		msg.To = doc.Email
		results.Doctor = s.outcome("doctor", appt, s.sender.Send(ctx, msg))
	}()
	go func() {
		defer wg.Done()
		msg := email.PatientBookingConfirmation(details)
		msg.To = appt.Email
		results.Patient = s.outcome("patient", appt, s.sender.Send(ctx, msg))
	}()

	wg.Wait()
	return results
}

func (s *ServiceImplementation) outcome(recipient string, appt *Appointment, err error) string {
	if err != nil {
		s.logger.Warn("Booking notification failed",
			zap.String("recipient", recipient),
			zap.String("appointmentId", appt.ID.Hex()),
			zap.Error(err))
		return EmailOutcomeFailed
	}
	return EmailOutcomeSent
}

// Cancel marks the caller's appointment as cancelled. Appointments owned by
// someone else are indistinguishable from missing ones. Cancelling an already
// cancelled appointment is a no-op.
func (s *ServiceImplementation) Cancel(ctx context.Context, idHex string, patientID primitive.ObjectID) (*Response, error) {
	appt, err := s.findOwned(ctx, idHex, patientID)
	if err != nil {
		return nil, err
	}

	if appt.Status != StatusCancelled {
		appt.Status = StatusCancelled
		if err := s.repo.Update(ctx, appt); err != nil {
			return nil, err
		}
	}
	return s.loadResponse(ctx, appt), nil
}

// Edit applies a partial update to the caller's appointment. Only fields
// present in the request change.
func (s *ServiceImplementation) Edit(ctx context.Context, idHex string, patientID primitive.ObjectID, req EditRequest) (*Response, error) {
	appt, err := s.findOwned(ctx, idHex, patientID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, common.ErrBadRequest.WithDetails("Invalid date format. Use RFC 3339 or YYYY-MM-DD.")
		}
		appt.Date = date
	}
	if req.Phone != nil {
		appt.Phone = *req.Phone
	}
	if req.Name != nil {
		appt.Name = *req.Name
	}

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return s.loadResponse(ctx, appt), nil
}

func (s *ServiceImplementation) findOwned(ctx context.Context, idHex string, patientID primitive.ObjectID) (*Appointment, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, common.ErrNotFound.WithDetails("Appointment not found.")
	}
	return s.repo.FindByIDAndPatient(ctx, id, patientID)
}

// List returns the appointments visible to the requester. Patients see their
// own bookings, doctors the ones assigned to them, admins everything. Any
// other role is denied.
func (s *ServiceImplementation) List(ctx context.Context, requesterID primitive.ObjectID, role common.Role, page, limit int) ([]Response, *common.Pagination, error) {
	var filter bson.M
	switch role {
	case common.RolePatient:
		filter = bson.M{"patient": requesterID}
	case common.RoleDoctor:
		filter = bson.M{"doctor": requesterID}
	case common.RoleAdmin:
		filter = bson.M{}
	default:
		return nil, nil, common.ErrForbidden.WithDetails("You do not have permission to list appointments.")
	}

	appointments, total, err := s.repo.List(ctx, filter, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]Response, 0, len(appointments))
	for i := range appointments {
		responses = append(responses, *s.loadResponse(ctx, &appointments[i]))
	}
	return responses, common.NewPagination(total, page, limit), nil
}

// SendReminders mails a reminder to every patient with a non-cancelled
// appointment in the window. Individual failures are logged and skipped.
func (s *ServiceImplementation) SendReminders(ctx context.Context, from, to time.Time) error {
	appointments, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return err
	}

	for i := range appointments {
		appt := &appointments[i]
		details := email.BookingDetails{
			PatientName: appt.Name,
			Date:        appt.Date,
		}
		if doc, err := s.doctors.FindByID(ctx, appt.DoctorID); err == nil {
			details.DoctorName = doc.Name
			details.Specialty = doc.Specialty
		}

		msg := email.AppointmentReminder(details)
		msg.To = appt.Email
		if err := s.sender.Send(ctx, msg); err != nil {
			s.logger.Warn("Reminder email failed",
				zap.String("appointmentId", appt.ID.Hex()), zap.Error(err))
		}
	}
	s.logger.Info("Reminder run finished", zap.Int("appointments", len(appointments)))
	return nil
}

// loadResponse joins the doctor and patient records into the response. A
// doctor that has since been deleted resolves to null.
func (s *ServiceImplementation) loadResponse(ctx context.Context, appt *Appointment) *Response {
	var doc *doctor.Doctor
	if d, err := s.doctors.FindByID(ctx, appt.DoctorID); err == nil {
		doc = d
	}
	var patient *user.User
	if u, err := s.users.FindByID(ctx, appt.PatientID); err == nil {
		patient = u
	}
	return s.toResponse(appt, doc, patient)
}

func (s *ServiceImplementation) toResponse(appt *Appointment, doc *doctor.Doctor, patient *user.User) *Response {
	resp := &Response{
		ID:        appt.ID.Hex(),
		Name:      appt.Name,
		Phone:     appt.Phone,
		Email:     appt.Email,
		Date:      appt.Date,
		Status:    appt.Status,
		Notes:     appt.Notes,
		CreatedAt: appt.CreatedAt,
	}
	if doc != nil {
		resp.Doctor = &DoctorSummary{
			ID:        doc.ID.Hex(),
			Name:      doc.Name,
			Email:     doc.Email,
			Specialty: doc.Specialty,
		}
	}
	if patient != nil {
		resp.Patient = &PatientSummary{
			ID:    patient.ID.Hex(),
			Name:  patient.Name,
			Email: patient.Email,
		}
	}
	return resp
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, common.ErrBadRequest
}
