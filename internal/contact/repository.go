// File: internal/contact/repository.go
package contact

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
	"clinic_backend/internal/platform/database"
)

// Repository defines persistence operations for contact messages.
type Repository interface {
	Create(ctx context.Context, msg *Message) error
	FindPage(ctx context.Context, page, limit int) ([]Message, int64, error)
}

type mongoRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewRepository creates the MongoDB-backed contact repository.
func NewRepository(db *mongo.Database, logger *zap.Logger) Repository {
	return &mongoRepository{
		collection: db.Collection(database.ContactsCollection),
		logger:     logger.Named("ContactRepository"),
	}
}

func (r *mongoRepository) Create(ctx context.Context, msg *Message) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		r.logger.Error("Failed to save contact message", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save the message.")
	}
	return nil
}

func (r *mongoRepository) FindPage(ctx context.Context, page, limit int) ([]Message, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to count contact messages", zap.Error(err))
		return nil, 0, common.ErrInternalServer.WithDetails("Could not list messages.")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(common.Offset(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to query contact messages", zap.Error(err))
		return nil, 0, common.ErrInternalServer.WithDetails("Could not list messages.")
	}
	defer cursor.Close(ctx)

	messages := make([]Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		r.logger.Error("Failed to decode contact messages", zap.Error(err))
		return nil, 0, common.ErrInternalServer.WithDetails("Could not list messages.")
	}
	return messages, total, nil
}
