package repo

import (
	"context"
	"fmt"

	"github.com/cyberpeers/cyberpeers-server/internal/db"
	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepo persists activity log entries.
type ActivityRepo struct {
	coll *mongo.Collection
}

// NewActivityRepo returns a new ActivityRepo.
func NewActivityRepo(database *mongo.Database) *ActivityRepo {
	return &ActivityRepo{coll: database.Collection(db.ActivitiesCollection)}
}

// Log appends one entry.
func (r *ActivityRepo) Log(ctx context.Context, entry models.Activity) (*InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	return newInsertResult(res), nil
}

// ListByActor returns every entry whose userEmail or adminEmail is email, newest first.
func (r *ActivityRepo) ListByActor(ctx context.Context, email string) ([]models.Activity, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"userEmail": email},
		bson.M{"adminEmail": email},
	}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// Recent returns the limit newest entries.
func (r *ActivityRepo) Recent(ctx context.Context, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

// CountAdmin counts entries filtered on role "admin". Activity documents never
// carry a role field, so this is always zero; the figure is kept for clients
// that read it from /admin/stats.
func (r *ActivityRepo) CountAdmin(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
}

func (r *ActivityRepo) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Activity, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find activities: %w", err)
	}
	entries := []models.Activity{}
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return entries, nil
}
