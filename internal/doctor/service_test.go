// File: internal/doctor/service_test.go
package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
)

// MockRepository is a mock type for doctor.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, d *Doctor) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil {
		d.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Doctor), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Doctor), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, d *Doctor) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupService(t *testing.T) (*ServiceImplementation, *MockRepository) {
	mockRepo := new(MockRepository)
	return NewService(mockRepo, nil, zap.NewNop()), mockRepo
}

func TestService_Create(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*doctor.Doctor")).Return(nil)

	d, err := svc.Create(ctx, CreateDoctorRequest{
		Name:      "Asha Verma",
		Email:     "asha.verma@clinic.test",
		Phone:     "7777777777",
		Password:  "doctorsecret",
		Specialty: "Cardiology",
	}, nil)

	assert.NoError(t, err)
	assert.NotEqual(t, "doctorsecret", d.PasswordHash)
	assert.True(t, common.CheckPasswordHash("doctorsecret", d.PasswordHash))
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).
		Return(common.ErrConflict.WithDetails("A doctor with this email already exists."))

	_, err := svc.Create(ctx, CreateDoctorRequest{
		Name:      "Asha Verma",
		Email:     "asha.verma@clinic.test",
		Phone:     "7777777777",
		Password:  "doctorsecret",
		Specialty: "Cardiology",
	}, nil)

	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestService_Update_PartialFields(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()
	existing := &Doctor{
		ID:           primitive.NewObjectID(),
		Name:         "Asha Verma",
		Email:        "asha.verma@clinic.test",
		Phone:        "7777777777",
		Specialty:    "Cardiology",
		PasswordHash: "existing-hash",
	}

	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)

	newSpecialty := "Neurology"
	d, err := svc.Update(ctx, existing.ID.Hex(), UpdateDoctorRequest{Specialty: &newSpecialty}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Neurology", d.Specialty)
	// Fields absent from the request are untouched.
	assert.Equal(t, "Asha Verma", d.Name)
	assert.Equal(t, "existing-hash", d.PasswordHash)
}

func TestService_Update_EmptyPasswordKeepsHash(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()
	existing := &Doctor{ID: primitive.NewObjectID(), Name: "Asha Verma", PasswordHash: "existing-hash"}

	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)

	empty := ""
	d, err := svc.Update(ctx, existing.ID.Hex(), UpdateDoctorRequest{Password: &empty}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "existing-hash", d.PasswordHash)
}

func TestService_Update_NewPasswordRehashed(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()
	existing := &Doctor{ID: primitive.NewObjectID(), Name: "Asha Verma", PasswordHash: "existing-hash"}

	mockRepo.On("FindByID", ctx, existing.ID).Return(existing, nil)
	mockRepo.On("Update", ctx, existing).Return(nil)

	newPassword := "fresh-password"
	d, err := svc.Update(ctx, existing.ID.Hex(), UpdateDoctorRequest{Password: &newPassword}, nil)

	assert.NoError(t, err)
	assert.NotEqual(t, "existing-hash", d.PasswordHash)
	assert.True(t, common.CheckPasswordHash("fresh-password", d.PasswordHash))
}

func TestService_Delete(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()

	mockRepo.On("Delete", ctx, id).Return(nil)

	assert.NoError(t, svc.Delete(ctx, id.Hex()))
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_InvalidID(t *testing.T) {
	svc, mockRepo := setupService(t)

	err := svc.Delete(context.Background(), "nope")

	assert.ErrorIs(t, err, common.ErrBadRequest)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()
	id := primitive.NewObjectID()

	mockRepo.On("FindByID", ctx, id).Return(nil, common.ErrNotFound.WithDetails("Doctor not found."))

	_, err := svc.GetByID(ctx, id.Hex())

	assert.ErrorIs(t, err, common.ErrNotFound)
}
