// File: internal/user/repository.go
package user

import (
	"context"
	"strings"
	"time"

	"clinic_backend/internal/common"
	"clinic_backend/internal/platform/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Repository defines the interface for user data operations.
type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailAndRole(ctx context.Context, email string, role common.Role) (*User, error)
	Update(ctx context.Context, user *User) error
}

type mongoRepository struct {
	collection *mongo.Collection
}

// NewMongoRepository creates a new Mongo-backed user repository.
func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection(database.UsersCollection)}
}

// Create inserts a new user record.
func (r *mongoRepository) Create(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict.WithDetails("User with this email already exists.")
		}
		return err
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound.WithDetails("User not found with this ID.")
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by email, regardless of role.
func (r *mongoRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound.WithDetails("User not found with this email.")
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmailAndRole retrieves a user by the (email, role) identity pair.
func (r *mongoRepository) FindByEmailAndRole(ctx context.Context, email string, role common.Role) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"email": normalizeEmail(email), "role": role}).Decode(&u)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.ErrNotFound.WithDetails("User not found with this email and role.")
		}
		return nil, err
	}
	return &u, nil
}

// Update replaces an existing user record.
func (r *mongoRepository) Update(ctx context.Context, user *User) error {
	user.Email = normalizeEmail(user.Email)
	user.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrConflict.WithDetails("Update failed: email already taken for this role.")
		}
		return err
	}
	if result.MatchedCount == 0 {
		return common.ErrNotFound.WithDetails("User not found.")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
