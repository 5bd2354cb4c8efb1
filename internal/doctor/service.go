// File: internal/doctor/service.go
package doctor

import (
	"context"
	"fmt"
	"mime/multipart"

	"clinic_backend/internal/common"
	"clinic_backend/internal/filestorage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service defines doctor directory business logic.
type Service interface {
	List(ctx context.Context) ([]Doctor, error)
	GetByID(ctx context.Context, idHex string) (*Doctor, error)
	Create(ctx context.Context, req CreateDoctorRequest, image *multipart.FileHeader) (*Doctor, error)
	Update(ctx context.Context, idHex string, req UpdateDoctorRequest, image *multipart.FileHeader) (*Doctor, error)
	Delete(ctx context.Context, idHex string) error
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo    Repository
	storage filestorage.Service
	logger  *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

// NewService creates a new doctor service.
func NewService(repo Repository, storage filestorage.Service, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:    repo,
		storage: storage,
		logger:  logger.Named("DoctorService"),
	}
}

func (s *ServiceImplementation) List(ctx context.Context) ([]Doctor, error) {
	return s.repo.FindAll(ctx)
}

func (s *ServiceImplementation) GetByID(ctx context.Context, idHex string) (*Doctor, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Invalid doctor ID format.")
	}
	return s.repo.FindByID(ctx, id)
}

// Create adds a new doctor profile, optionally attaching an uploaded image.
func (s *ServiceImplementation) Create(ctx context.Context, req CreateDoctorRequest, image *multipart.FileHeader) (*Doctor, error) {
	hashedPassword, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash doctor password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	d := &Doctor{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Specialty:    req.Specialty,
		Timings:      req.Timings,
		PasswordHash: hashedPassword,
		Image:        s.uploadImage(ctx, image),
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Doctor created", zap.String("doctorID", d.ID.Hex()))
	return d, nil
}

// Update applies a partial update. An omitted password leaves the credential
// untouched; a non-empty one is re-hashed.
func (s *ServiceImplementation) Update(ctx context.Context, idHex string, req UpdateDoctorRequest, image *multipart.FileHeader) (*Doctor, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, common.ErrBadRequest.WithDetails("Invalid doctor ID format.")
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Email != nil {
		d.Email = *req.Email
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.Specialty != nil {
		d.Specialty = *req.Specialty
	}
	if req.Timings != nil {
		d.Timings = *req.Timings
	}
	if req.Password != nil && *req.Password != "" {
		hashedPassword, err := common.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		d.PasswordHash = hashedPassword
	}
	if url := s.uploadImage(ctx, image); url != "" {
		d.Image = url
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Doctor updated", zap.String("doctorID", d.ID.Hex()))
	return d, nil
}

// Delete removes a doctor profile unconditionally. Existing appointments keep
// their reference; list endpoints resolve the missing doctor to null.
func (s *ServiceImplementation) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return common.ErrBadRequest.WithDetails("Invalid doctor ID format.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Doctor deleted", zap.String("doctorID", idHex))
	return nil
}

func (s *ServiceImplementation) uploadImage(ctx context.Context, image *multipart.FileHeader) string {
	if image == nil {
		return ""
	}
	if s.storage == nil {
		s.logger.Warn("Image provided but storage is not configured, skipping upload")
		return ""
	}
	url, err := s.storage.UploadImage(ctx, image, "doctors")
	if err != nil {
		s.logger.Warn("Image upload failed, continuing without image", zap.Error(err))
		return ""
	}
	return url
}
