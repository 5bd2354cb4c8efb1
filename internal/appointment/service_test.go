// File: internal/appointment/service_test.go
package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
	"clinic_backend/internal/doctor"
	"clinic_backend/internal/email"
	"clinic_backend/internal/user"
)

// MockRepository is a mock type for appointment.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, appt *Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Appointment), args.Error(1)
}

func (m *MockRepository) FindByIDAndPatient(ctx context.Context, id, patientID primitive.ObjectID) (*Appointment, error) {
	args := m.Called(ctx, id, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Appointment), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, appt *Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, filter bson.M, page, limit int) ([]Appointment, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Appointment), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Appointment), args.Error(1)
}

// MockUserRepository is a mock type for user.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailAndRole(ctx context.Context, email string, role common.Role) (*user.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// MockDoctorRepository is a mock type for doctor.Repository
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*doctor.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*doctor.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindAll(ctx context.Context) ([]doctor.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]doctor.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, d *doctor.Doctor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSender is a mock type for email.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// Test Suite Setup
type serviceTestSuite struct {
	service        Service
	mockRepo       *MockRepository
	mockUserRepo   *MockUserRepository
	mockDoctorRepo *MockDoctorRepository
	mockSender     *MockSender
}

func setupServiceTestSuite(t *testing.T) *serviceTestSuite {
	ts := &serviceTestSuite{}
	ts.mockRepo = new(MockRepository)
	ts.mockUserRepo = new(MockUserRepository)
	ts.mockDoctorRepo = new(MockDoctorRepository)
	ts.mockSender = new(MockSender)
	ts.service = NewService(ts.mockRepo, ts.mockUserRepo, ts.mockDoctorRepo, ts.mockSender, zap.NewNop())
	return ts
}

func sampleDoctor() *doctor.Doctor {
	return &doctor.Doctor{
		ID:        primitive.NewObjectID(),
		Name:      "Asha Verma",
		Email:     "asha.verma@clinic.test",
		Specialty: "Cardiology",
	}
}

// --- Create ---

func TestService_Create_NewPatient(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	doc := sampleDoctor()

	ts.mockDoctorRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	ts.mockUserRepo.On("FindByEmailAndRole", ctx, "ravi@example.com", common.RolePatient).
		Return(nil, common.ErrNotFound)
	ts.mockUserRepo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)
	ts.mockRepo.On("Create", ctx, mock.AnythingOfType("*appointment.Appointment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*Appointment).ID = primitive.NewObjectID()
		}).Return(nil)
	ts.mockSender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil).Twice()

	resp, err := ts.service.Create(ctx, CreateRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9999999999",
		Date:     "2026-09-15",
		DoctorID: doc.ID.Hex(),
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.NotNil(t, resp.Doctor)
	assert.Equal(t, doc.Name, resp.Doctor.Name)
	assert.NotNil(t, resp.Patient)
	assert.Equal(t, EmailOutcomeSent, resp.EmailResults.Doctor)
	assert.Equal(t, EmailOutcomeSent, resp.EmailResults.Patient)

	// A brand new patient account was created with the booking details.
	ts.mockUserRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.Email == "ravi@example.com" && u.Role == common.RolePatient && u.PasswordHash != ""
	}))
	ts.mockRepo.AssertExpectations(t)
	ts.mockSender.AssertExpectations(t)
}

func TestService_Create_ExistingPatientReused(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	doc := sampleDoctor()
	existing := &user.User{
		ID:    primitive.NewObjectID(),
		Name:  "Old Name",
		Email: "ravi@example.com",
		Role:  common.RolePatient,
	}

	ts.mockDoctorRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	ts.mockUserRepo.On("FindByEmailAndRole", ctx, "ravi@example.com", common.RolePatient).
		Return(existing, nil)
	ts.mockUserRepo.On("Update", ctx, existing).Return(nil)
	ts.mockRepo.On("Create", ctx, mock.AnythingOfType("*appointment.Appointment")).Return(nil)
	ts.mockSender.On("Send", mock.Anything, mock.Anything).Return(nil)

	resp, err := ts.service.Create(ctx, CreateRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9999999999",
		Date:     "2026-09-15",
		DoctorID: doc.ID.Hex(),
	})

	assert.NoError(t, err)
	assert.Equal(t, existing.ID.Hex(), resp.Patient.ID)
	// The latest booking name wins.
	assert.Equal(t, "Ravi Kumar", existing.Name)
	ts.mockUserRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// The appointment references the existing patient account.
	ts.mockRepo.AssertCalled(t, "Create", ctx, mock.MatchedBy(func(a *Appointment) bool {
		return a.PatientID == existing.ID && a.Status == StatusPending
	}))
}

func TestService_Create_UnknownDoctor(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	doctorID := primitive.NewObjectID()

	ts.mockDoctorRepo.On("FindByID", ctx, doctorID).Return(nil, common.ErrNotFound)

	_, err := ts.service.Create(ctx, CreateRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9999999999",
		Date:     "2026-09-15",
		DoctorID: doctorID.Hex(),
	})

	assert.ErrorIs(t, err, common.ErrNotFound)
	ts.mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_InvalidDoctorID(t *testing.T) {
	ts := setupServiceTestSuite(t)

	_, err := ts.service.Create(context.Background(), CreateRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9999999999",
		Date:     "2026-09-15",
		DoctorID: "not-a-hex-id",
	})

	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestService_Create_EmailFailureDoesNotFailBooking(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	doc := sampleDoctor()

	ts.mockDoctorRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	ts.mockUserRepo.On("FindByEmailAndRole", ctx, "ravi@example.com", common.RolePatient).
		Return(nil, common.ErrNotFound)
	ts.mockUserRepo.On("Create", ctx, mock.Anything).Return(nil)
	ts.mockRepo.On("Create", ctx, mock.Anything).Return(nil)
	ts.mockSender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp unreachable"))

	resp, err := ts.service.Create(ctx, CreateRequest{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9999999999",
		Date:     "2026-09-15",
		DoctorID: doc.ID.Hex(),
	})

	assert.NoError(t, err)
	assert.Equal(t, EmailOutcomeFailed, resp.EmailResults.Doctor)
	assert.Equal(t, EmailOutcomeFailed, resp.EmailResults.Patient)
}

// --- Cancel ---

func TestService_Cancel_Success(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	patientID := primitive.NewObjectID()
	appt := &Appointment{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		DoctorID:  primitive.NewObjectID(),
		Status:    StatusPending,
	}

	ts.mockRepo.On("FindByIDAndPatient", ctx, appt.ID, patientID).Return(appt, nil)
	ts.mockRepo.On("Update", ctx, appt).Return(nil)
	ts.mockDoctorRepo.On("FindByID", ctx, appt.DoctorID).Return(nil, common.ErrNotFound)
	ts.mockUserRepo.On("FindByID", ctx, patientID).Return(nil, common.ErrNotFound)

	resp, err := ts.service.Cancel(ctx, appt.ID.Hex(), patientID)

	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_Cancel_Idempotent(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	patientID := primitive.NewObjectID()
	appt := &Appointment{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		DoctorID:  primitive.NewObjectID(),
		Status:    StatusCancelled,
	}

	ts.mockRepo.On("FindByIDAndPatient", ctx, appt.ID, patientID).Return(appt, nil)
	ts.mockDoctorRepo.On("FindByID", ctx, appt.DoctorID).Return(nil, common.ErrNotFound)
	ts.mockUserRepo.On("FindByID", ctx, patientID).Return(nil, common.ErrNotFound)

	resp, err := ts.service.Cancel(ctx, appt.ID.Hex(), patientID)

	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	// Already cancelled, nothing to write.
	ts.mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Cancel_NotOwnerLooksLikeMissing(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	apptID := primitive.NewObjectID()
	otherPatient := primitive.NewObjectID()

	ts.mockRepo.On("FindByIDAndPatient", ctx, apptID, otherPatient).
		Return(nil, common.ErrNotFound.WithDetails("Appointment not found."))

	_, err := ts.service.Cancel(ctx, apptID.Hex(), otherPatient)

	assert.ErrorIs(t, err, common.ErrNotFound)
	ts.mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Cancel_MalformedID(t *testing.T) {
	ts := setupServiceTestSuite(t)

	_, err := ts.service.Cancel(context.Background(), "garbage", primitive.NewObjectID())

	// A malformed ID is indistinguishable from a missing appointment.
	assert.ErrorIs(t, err, common.ErrNotFound)
}

// --- Edit ---

func TestService_Edit_PartialUpdate(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	patientID := primitive.NewObjectID()
	originalDate := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	appt := &Appointment{
		ID:        primitive.NewObjectID(),
		Name:      "Ravi Kumar",
		Phone:     "9999999999",
		PatientID: patientID,
		DoctorID:  primitive.NewObjectID(),
		Date:      originalDate,
		Status:    StatusPending,
	}

	ts.mockRepo.On("FindByIDAndPatient", ctx, appt.ID, patientID).Return(appt, nil)
	ts.mockRepo.On("Update", ctx, appt).Return(nil)
	ts.mockDoctorRepo.On("FindByID", ctx, appt.DoctorID).Return(nil, common.ErrNotFound)
	ts.mockUserRepo.On("FindByID", ctx, patientID).Return(nil, common.ErrNotFound)

	newPhone := "8888888888"
	resp, err := ts.service.Edit(ctx, appt.ID.Hex(), patientID, EditRequest{Phone: &newPhone})

	assert.NoError(t, err)
	assert.Equal(t, "8888888888", resp.Phone)
	// Untouched fields survive.
	assert.Equal(t, "Ravi Kumar", resp.Name)
	assert.Equal(t, originalDate, resp.Date)
}

func TestService_Edit_InvalidDate(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	patientID := primitive.NewObjectID()
	appt := &Appointment{
		ID:        primitive.NewObjectID(),
		PatientID: patientID,
		Status:    StatusPending,
	}

	ts.mockRepo.On("FindByIDAndPatient", ctx, appt.ID, patientID).Return(appt, nil)

	badDate := "next tuesday"
	_, err := ts.service.Edit(ctx, appt.ID.Hex(), patientID, EditRequest{Date: &badDate})

	assert.ErrorIs(t, err, common.ErrBadRequest)
	ts.mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// --- List ---

func TestService_List_PatientScoped(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	patientID := primitive.NewObjectID()

	ts.mockRepo.On("List", ctx, bson.M{"patient": patientID}, 1, 10).
		Return([]Appointment{}, int64(0), nil)

	_, pagination, err := ts.service.List(ctx, patientID, common.RolePatient, 1, 10)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), pagination.Total)
	ts.mockRepo.AssertExpectations(t)
}

func TestService_List_AdminSeesAll(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	adminID := primitive.NewObjectID()
	doctorID := primitive.NewObjectID()
	patientID := primitive.NewObjectID()
	appts := []Appointment{
		{ID: primitive.NewObjectID(), DoctorID: doctorID, PatientID: patientID, Status: StatusPending},
	}

	ts.mockRepo.On("List", ctx, bson.M{}, 1, 10).Return(appts, int64(25), nil)
	ts.mockDoctorRepo.On("FindByID", ctx, doctorID).Return(nil, common.ErrNotFound)
	ts.mockUserRepo.On("FindByID", ctx, patientID).
		Return(&user.User{ID: patientID, Name: "Ravi Kumar", Email: "ravi@example.com"}, nil)

	responses, pagination, err := ts.service.List(ctx, adminID, common.RoleAdmin, 1, 10)

	assert.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, int64(25), pagination.Total)
	assert.Equal(t, 3, pagination.Pages)
	// A deleted doctor resolves to null rather than an error.
	assert.Nil(t, responses[0].Doctor)
	assert.NotNil(t, responses[0].Patient)
}

func TestService_List_UnknownRoleDenied(t *testing.T) {
	ts := setupServiceTestSuite(t)

	_, _, err := ts.service.List(context.Background(), primitive.NewObjectID(), common.Role("superuser"), 1, 10)

	assert.ErrorIs(t, err, common.ErrForbidden)
	ts.mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reminders ---

func TestService_SendReminders(t *testing.T) {
	ts := setupServiceTestSuite(t)
	ctx := context.Background()
	doc := sampleDoctor()
	from := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	appts := []Appointment{
		{ID: primitive.NewObjectID(), Name: "Ravi Kumar", Email: "ravi@example.com", DoctorID: doc.ID, Date: from.Add(10 * time.Hour), Status: StatusPending},
		{ID: primitive.NewObjectID(), Name: "Meena Shah", Email: "meena@example.com", DoctorID: doc.ID, Date: from.Add(12 * time.Hour), Status: StatusConfirmed},
	}

	ts.mockRepo.On("FindByDateRange", ctx, from, to).Return(appts, nil)
	ts.mockDoctorRepo.On("FindByID", ctx, doc.ID).Return(doc, nil)
	ts.mockSender.On("Send", ctx, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To == "ravi@example.com"
	})).Return(nil).Once()
	ts.mockSender.On("Send", ctx, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To == "meena@example.com"
	})).Return(errors.New("mailbox full")).Once()

	// One failed reminder does not abort the run.
	err := ts.service.SendReminders(ctx, from, to)

	assert.NoError(t, err)
	ts.mockSender.AssertExpectations(t)
}
