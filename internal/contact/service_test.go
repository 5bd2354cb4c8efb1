// File: internal/contact/service_test.go
package contact

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MockRepository is a mock type for contact.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, msg *Message) error {
	args := m.Called(ctx, msg)
	if args.Error(0) == nil {
		msg.ID = primitive.NewObjectID()
		msg.CreatedAt = time.Now().UTC()
	}
	return args.Error(0)
}

func (m *MockRepository) FindPage(ctx context.Context, page, limit int) ([]Message, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Message), args.Get(1).(int64), args.Error(2)
}

func TestService_Create_NormalizesEmail(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.AnythingOfType("*contact.Message")).Return(nil)

	resp, err := svc.Create(ctx, CreateRequest{
		Name:    "Ravi Kumar",
		Email:   "  Ravi@Example.COM ",
		Message: "When are you open on Sundays?",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ravi@example.com", resp.Email)
	assert.NotEmpty(t, resp.ID)
}

func TestService_List_Paginated(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, zap.NewNop())
	ctx := context.Background()
	messages := []Message{
		{ID: primitive.NewObjectID(), Name: "Ravi Kumar", Email: "ravi@example.com", Message: "Hello"},
		{ID: primitive.NewObjectID(), Name: "Meena Shah", Email: "meena@example.com", Message: "Hi"},
	}

	mockRepo.On("FindPage", ctx, 2, 10).Return(messages, int64(12), nil)

	responses, pagination, err := svc.List(ctx, 2, 10)

	assert.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(12), pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	assert.Equal(t, 2, pagination.Page)
}
