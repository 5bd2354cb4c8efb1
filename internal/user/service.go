// File: internal/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"clinic_backend/internal/common"
	"clinic_backend/internal/filestorage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service defines user-facing business logic.
type Service interface {
	GetUserByID(ctx context.Context, idHex string) (*User, error)
	CreateStaffUser(ctx context.Context, req CreateStaffRequest, image *multipart.FileHeader) (*User, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo    Repository
	storage filestorage.Service
	logger  *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new user service.
func NewService(repo Repository, storage filestorage.Service, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:    repo,
		storage: storage,
		logger:  logger.Named("UserService"),
	}
}

// GetUserByID fetches a user profile by ObjectID hex.
func (s *ServiceImplementation) GetUserByID(ctx context.Context, idHex string) (*User, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Invalid user ID format.")
	}
	return s.repo.FindByID(ctx, id)
}

// CreateStaffUser creates a doctor or admin account on behalf of an admin,
// optionally attaching an uploaded profile image.
func (s *ServiceImplementation) CreateStaffUser(ctx context.Context, req CreateStaffRequest, image *multipart.FileHeader) (*User, error) {
	role, ok := common.ParseRole(req.Role)
	if !ok || role == common.RolePatient {
		return nil, common.ErrBadRequest.WithDetails("Role must be doctor or admin.")
	}

	_, err := s.repo.FindByEmailAndRole(ctx, req.Email, role)
	if err == nil {
		return nil, common.ErrConflict.WithDetails("User with this email already exists.")
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}

	hashedPassword, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password for staff user", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL := s.uploadImage(ctx, image, role)

	u := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Specialty:    req.Specialty,
		Image:        imageURL,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("Staff user created",
		zap.String("userID", u.ID.Hex()),
		zap.String("role", role.String()),
	)
	return u, nil
}

// uploadImage is best-effort: a missing storage backend or a failed upload
// produces an account without an image, never a failed request.
func (s *ServiceImplementation) uploadImage(ctx context.Context, image *multipart.FileHeader, role common.Role) string {
	if image == nil {
		return ""
	}
	if s.storage == nil {
		s.logger.Warn("Image provided but storage is not configured, skipping upload")
		return ""
	}
	folder := "admins"
	if role == common.RoleDoctor {
		folder = "doctors"
	}
	url, err := s.storage.UploadImage(ctx, image, folder)
	if err != nil {
		s.logger.Warn("Image upload failed, creating account without image", zap.Error(err))
		return ""
	}
	return url
}
