// File: internal/contact/service.go
package contact

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"clinic_backend/internal/common"
)

// Service defines the contact message operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, page, limit int) ([]Response, *common.Pagination, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates the contact service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger.Named("ContactService")}
}

func (s *ServiceImplementation) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	msg := &Message{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	resp := toResponse(msg)
	return &resp, nil
}

func (s *ServiceImplementation) List(ctx context.Context, page, limit int) ([]Response, *common.Pagination, error) {
	messages, total, err := s.repo.FindPage(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}

	responses := make([]Response, 0, len(messages))
	for i := range messages {
		responses = append(responses, toResponse(&messages[i]))
	}
	return responses, common.NewPagination(total, page, limit), nil
}
