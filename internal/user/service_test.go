// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
)

// MockRepository is a mock type for user.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = primitive.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmailAndRole(ctx context.Context, email string, role common.Role) (*User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func setupService(t *testing.T) (*ServiceImplementation, *MockRepository) {
	mockRepo := new(MockRepository)
	return NewService(mockRepo, nil, zap.NewNop()), mockRepo
}

func TestService_CreateStaffUser_Doctor(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()

	mockRepo.On("FindByEmailAndRole", ctx, "asha@clinic.test", common.RoleDoctor).
		Return(nil, common.ErrNotFound)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*user.User")).Return(nil)

	u, err := svc.CreateStaffUser(ctx, CreateStaffRequest{
		Name:      "Asha Verma",
		Email:     "asha@clinic.test",
		Password:  "doctorsecret",
		Role:      "doctor",
		Specialty: "Cardiology",
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, common.RoleDoctor, u.Role)
	assert.True(t, common.CheckPasswordHash("doctorsecret", u.PasswordHash))
}

func TestService_CreateStaffUser_RejectsPatientRole(t *testing.T) {
	svc, mockRepo := setupService(t)

	_, err := svc.CreateStaffUser(context.Background(), CreateStaffRequest{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "whatever123",
		Role:     "patient",
	}, nil)

	assert.ErrorIs(t, err, common.ErrBadRequest)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateStaffUser_RejectsUnknownRole(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateStaffUser(context.Background(), CreateStaffRequest{
		Name:     "Sneaky",
		Email:    "sneaky@example.com",
		Password: "whatever123",
		Role:     "superadmin",
	}, nil)

	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestService_CreateStaffUser_DuplicateEmail(t *testing.T) {
	svc, mockRepo := setupService(t)
	ctx := context.Background()
	existing := &User{ID: primitive.NewObjectID(), Email: "asha@clinic.test", Role: common.RoleAdmin}

	mockRepo.On("FindByEmailAndRole", ctx, "asha@clinic.test", common.RoleAdmin).
		Return(existing, nil)

	_, err := svc.CreateStaffUser(ctx, CreateStaffRequest{
		Name:     "Asha Verma",
		Email:    "asha@clinic.test",
		Password: "adminsecret",
		Role:     "admin",
	}, nil)

	assert.ErrorIs(t, err, common.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_GetUserByID_InvalidHex(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetUserByID(context.Background(), "not-hex")

	assert.ErrorIs(t, err, common.ErrBadRequest)
}
