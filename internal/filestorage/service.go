// File: internal/filestorage/service.go
package filestorage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"clinic_backend/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service stores uploaded images and returns a stable URL for each.
type Service interface {
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error)
}

// CloudinaryService uploads images to Cloudinary.
type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	logger *zap.Logger
}

var _ Service = (*CloudinaryService)(nil)

// NewCloudinaryService creates a new Cloudinary-backed storage service.
// Returns a nil service (and no error) when Cloudinary is not configured,
// so image upload degrades to "no image" instead of blocking startup.
func NewCloudinaryService(cfg *config.Config, logger *zap.Logger) (Service, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		logger.Warn("Cloudinary credentials not configured, image uploads are disabled")
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld, logger: logger.Named("CloudinaryService")}, nil
}

// UploadImage uploads a multipart image into the given folder and returns its
// secure URL. Only jpeg/png/gif content is accepted.
func (s *CloudinaryService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, folder string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("fileHeader cannot be nil")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"),
		strings.HasPrefix(contentType, "image/png"),
		strings.HasPrefix(contentType, "image/gif"):
	default:
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		s.logger.Error("Cloudinary upload failed", zap.String("folder", folder), zap.Error(err))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.Info("Image uploaded",
		zap.String("folder", folder),
		zap.String("url", resp.SecureURL),
	)
	return resp.SecureURL, nil
}
