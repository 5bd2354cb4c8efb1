// File: internal/appointment/repository.go
package appointment

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"clinic_backend/internal/common"
	"clinic_backend/internal/platform/database"
)

// Repository defines persistence operations for appointments.
type Repository interface {
	Create(ctx context.Context, appt *Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Appointment, error)
	FindByIDAndPatient(ctx context.Context, id, patientID primitive.ObjectID) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	List(ctx context.Context, filter bson.M, page, limit int) ([]Appointment, int64, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Appointment, error)
}

type mongoRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewRepository creates the MongoDB-backed appointment repository.
func NewRepository(db *mongo.Database, logger *zap.Logger) Repository {
	return &mongoRepository{
		collection: db.Collection(database.AppointmentsCollection),
		logger:     logger.Named("AppointmentRepository"),
	}
}

func (r *mongoRepository) Create(ctx context.Context, appt *Appointment) error {
	now := time.Now().UTC()
	appt.ID = primitive.NewObjectID()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, appt); err != nil {
		r.logger.Error("Failed to create appointment", zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not save the appointment.")
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Appointment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoRepository) FindByIDAndPatient(ctx context.Context, id, patientID primitive.ObjectID) (*Appointment, error) {
	return r.findOne(ctx, bson.M{"_id": id, "patient": patientID})
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.M) (*Appointment, error) {
	var appt Appointment
	err := r.collection.FindOne(ctx, filter).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrNotFound.WithDetails("Appointment not found.")
		}
		r.logger.Error("Failed to find appointment", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve the appointment.")
	}
	return &appt, nil
}

func (r *mongoRepository) Update(ctx context.Context, appt *Appointment) error {
	appt.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": appt.ID}, appt)
	if err != nil {
		r.logger.Error("Failed to update appointment", zap.Error(err), zap.String("id", appt.ID.Hex()))
		return common.ErrInternalServer.WithDetails("Could not update the appointment.")
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound.WithDetails("Appointment not found.")
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context, filter bson.M, page, limit int) ([]Appointment, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count appointments", zap.Error(err))
		return nil, 0, common.ErrInternalServer.WithDetails("Could not list appointments.")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(common.Offset(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to query appointments", zap.Error(err))
		return nil, 0, common.ErrInternalServer.WithDetails("Could not list appointments.")
	}
	defer cursor.Close(ctx)

	appointments := make([]Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		r.logger.Error("Failed to decode appointments", zap.Error(err))
		return nil, 0, common.ErrInternalServer.WithDetails("Could not list appointments.")
	}
	return appointments, total, nil
}

func (r *mongoRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	filter := bson.M{
		"date":   bson.M{"$gte": from, "$lt": to},
		"status": bson.M{"$ne": StatusCancelled},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to query appointments by date range", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not query appointments.")
	}
	defer cursor.Close(ctx)

	appointments := make([]Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		r.logger.Error("Failed to decode appointments", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not query appointments.")
	}
	return appointments, nil
}
