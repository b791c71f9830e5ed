package handlers

import (
	"context"
	"time"

	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"github.com/cyberpeers/cyberpeers-server/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the profile persistence the handlers need. *repo.UserRepo
// satisfies it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, doc bson.M) (*repo.InsertResult, error)
	UpdateLastLogin(ctx context.Context, email string, at time.Time) (*repo.UpdateResult, error)
	UpdateProfile(ctx context.Context, email string, fields bson.M) (*repo.UpdateResult, error)
	UpdateRole(ctx context.Context, id primitive.ObjectID, adminEmail, role string) (*repo.UpdateResult, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, adminEmail, status string) (*repo.UpdateResult, error)
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// ActivityStore is the activity log persistence. *repo.ActivityRepo satisfies it.
type ActivityStore interface {
	Log(ctx context.Context, entry models.Activity) (*repo.InsertResult, error)
	ListByActor(ctx context.Context, email string) ([]models.Activity, error)
	Recent(ctx context.Context, limit int64) ([]models.Activity, error)
	CountAdmin(ctx context.Context) (int64, error)
}

var (
	_ UserStore     = (*repo.UserRepo)(nil)
	_ ActivityStore = (*repo.ActivityRepo)(nil)
)
