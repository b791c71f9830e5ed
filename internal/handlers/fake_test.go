package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"time"

	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"github.com/cyberpeers/cyberpeers-server/internal/repo"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store unavailable")

// fakeUsers is an in-memory UserStore that applies the same filters as the
// Mongo repo.
type fakeUsers struct {
	mu    sync.Mutex
	users []*models.User
	err   error
}

func (f *fakeUsers) add(u models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users = append(f.users, &u)
	return &u
}

func (f *fakeUsers) byEmail(email string) *models.User {
	for _, u := range f.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if u := f.byEmail(email); u != nil {
		c := *u
		return &c, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, doc bson.M) (*repo.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u := &models.User{ID: primitive.NewObjectID(), Extra: map[string]interface{}{}}
	for k, v := range doc {
		switch k {
		case "email":
			u.Email, _ = v.(string)
		case "name":
			u.Name, _ = v.(string)
		case "role":
			u.Role, _ = v.(string)
		case "status":
			u.Status, _ = v.(string)
		case "createdAt":
			u.CreatedAt, _ = v.(time.Time)
		case "last_loggedIn":
			u.LastLoggedIn, _ = v.(time.Time)
		default:
			u.Extra[k] = v
		}
	}
	f.users = append(f.users, u)
	return &repo.InsertResult{Acknowledged: true, InsertedID: u.ID}, nil
}

func (f *fakeUsers) update(match func(*models.User) bool, apply func(*models.User)) (*repo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if match(u) {
			apply(u)
			return &repo.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &repo.UpdateResult{Acknowledged: true}, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, email string, at time.Time) (*repo.UpdateResult, error) {
	return f.update(func(u *models.User) bool { return u.Email == email },
		func(u *models.User) { u.LastLoggedIn = at })
}

func (f *fakeUsers) UpdateProfile(_ context.Context, email string, fields bson.M) (*repo.UpdateResult, error) {
	return f.update(func(u *models.User) bool { return u.Email == email },
		func(u *models.User) {
			if u.Extra == nil {
				u.Extra = map[string]interface{}{}
			}
			for k, v := range fields {
				if k == "name" {
					u.Name, _ = v.(string)
					continue
				}
				u.Extra[k] = v
			}
		})
}

func (f *fakeUsers) UpdateRole(_ context.Context, id primitive.ObjectID, adminEmail, role string) (*repo.UpdateResult, error) {
	return f.update(func(u *models.User) bool {
		return u.ID == id && u.Email != adminEmail && u.Status != models.StatusSuspended
	}, func(u *models.User) { u.Role = role })
}

func (f *fakeUsers) UpdateStatus(_ context.Context, id primitive.ObjectID, adminEmail, status string) (*repo.UpdateResult, error) {
	return f.update(func(u *models.User) bool {
		return u.ID == id && u.Email != adminEmail
	}, func(u *models.User) { u.Status = status })
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), f.err
}

func (f *fakeUsers) CountByStatus(_ context.Context, status string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.Status == status {
			n++
		}
	}
	return n, f.err
}

// fakeActivities is an in-memory ActivityStore.
type fakeActivities struct {
	mu      sync.Mutex
	entries []models.Activity
	logErr  error
}

func (f *fakeActivities) Log(_ context.Context, entry models.Activity) (*repo.InsertResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.logErr != nil {
		return nil, f.logErr
	}
	entry.ID = primitive.NewObjectID()
	f.entries = append(f.entries, entry)
	return &repo.InsertResult{Acknowledged: true, InsertedID: entry.ID}, nil
}

func (f *fakeActivities) newestFirst(keep func(models.Activity) bool) []models.Activity {
	out := []models.Activity{}
	for _, e := range f.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeActivities) ListByActor(_ context.Context, email string) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.newestFirst(func(e models.Activity) bool {
		return e.UserEmail == email || e.AdminEmail == email
	}), nil
}

func (f *fakeActivities) Recent(_ context.Context, limit int64) ([]models.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.newestFirst(func(models.Activity) bool { return true })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountAdmin mirrors the Mongo filter on a role field that entries never have.
func (f *fakeActivities) CountAdmin(context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeActivities) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

// requestWithChiURLParams returns a request with chi route context and URL params set.
func requestWithChiURLParams(method, path string, body []byte, params map[string]string) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
