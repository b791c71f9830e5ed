package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cyberpeers/cyberpeers-server/internal/db"
	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	coll *mongo.Collection
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(database *mongo.Database) *UserRepo {
	return &UserRepo{coll: database.Collection(db.UsersCollection)}
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// ==========================
// Create User
// ==========================

// Create inserts doc as-is. Callers set defaults and timestamps.
func (r *UserRepo) Create(ctx context.Context, doc bson.M) (*InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return newInsertResult(res), nil
}

// ==========================
// Update Last Login
// ==========================
func (r *UserRepo) UpdateLastLogin(ctx context.Context, email string, at time.Time) (*UpdateResult, error) {
	return r.updateOne(ctx, bson.M{"email": email}, bson.M{"last_loggedIn": at})
}

// ==========================
// Update Profile
// ==========================

// UpdateProfile merges fields into the profile matched by email.
func (r *UserRepo) UpdateProfile(ctx context.Context, email string, fields bson.M) (*UpdateResult, error) {
	return r.updateOne(ctx, bson.M{"email": email}, fields)
}

// ==========================
// Update Role
// ==========================

// UpdateRole sets the role of the profile with id unless that profile belongs
// to adminEmail or is suspended. Excluded profiles produce a zero match.
func (r *UserRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, adminEmail, role string) (*UpdateResult, error) {
	filter := bson.M{
		"_id":    id,
		"email":  bson.M{"$ne": adminEmail},
		"status": bson.M{"$ne": models.StatusSuspended},
	}
	return r.updateOne(ctx, filter, bson.M{"role": role})
}

// ==========================
// Update Status
// ==========================
func (r *UserRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, adminEmail, status string) (*UpdateResult, error) {
	filter := bson.M{
		"_id":   id,
		"email": bson.M{"$ne": adminEmail},
	}
	return r.updateOne(ctx, filter, bson.M{"status": status})
}

func (r *UserRepo) updateOne(ctx context.Context, filter, set bson.M) (*UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return newUpdateResult(res), nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// ==========================
// Counts
// ==========================
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *UserRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"status": status})
}
