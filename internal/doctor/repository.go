// File: internal/doctor/repository.go
package doctor

import (
	"context"
	"strings"
	"time"

	"clinic_backend/internal/common"
	"clinic_backend/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines the interface for doctor data operations.
type Repository interface {
	Create(ctx context.Context, doctor *Doctor) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Doctor, error)
	FindAll(ctx context.Context) ([]Doctor, error)
	Update(ctx context.Context, doctor *Doctor) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a new Mongo-backed doctor repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection(database.DoctorsCollection)}
}

func (r *mongoRepository) Create(ctx context.Context, doctor *Doctor) error {
	doctor.Email = strings.ToLower(strings.TrimSpace(doctor.Email))
	if doctor.ID.IsZero() {
		doctor.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict.WithDetails("Doctor with this email already exists.")
		}
		return err
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Doctor, error) {
	var d Doctor
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound.WithDetails("Doctor not found.")
		}
		return nil, err
	}
	return &d, nil
}

func (r *mongoRepository) FindAll(ctx context.Context) ([]Doctor, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := make([]Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *mongoRepository) Update(ctx context.Context, doctor *Doctor) error {
	doctor.Email = strings.ToLower(strings.TrimSpace(doctor.Email))
	doctor.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doctor.ID}, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict.WithDetails("Update failed: email already taken.")
		}
		return err
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound.WithDetails("Doctor not found.")
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound.WithDetails("Doctor not found.")
	}
	return nil
}
