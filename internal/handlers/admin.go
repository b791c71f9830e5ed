package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"github.com/cyberpeers/cyberpeers-server/internal/repo"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// recentActivityLimit is how many entries /admin/stats returns.
const recentActivityLimit = 5

// ==========================
// AdminHandler
// ==========================

// AdminHandler serves the routes behind VerifyAdmin. The email query
// parameter names the acting admin.
type AdminHandler struct {
	Users      UserStore
	Activities ActivityStore
	Now        func() time.Time
}

func (h *AdminHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Stats is the body of GET /admin/stats.
type Stats struct {
	TotalUsers       int64                 `json:"totalUsers"`
	ActiveUsers      int64                 `json:"activeUsers"`
	SuspendedUsers   int64                 `json:"suspendedUsers"`
	Activities       int64                 `json:"activities"`
	RecentActivities []models.ActivityView `json:"recentActivities"`
}

// ==========================
// List Users (GET /users)
// ==========================
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// ==========================
// Stats (GET /admin/stats)
// ==========================
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		stats Stats
		err   error
	)
	if stats.TotalUsers, err = h.Users.Count(ctx); err != nil {
		h.statsFailed(w, "count users", err)
		return
	}
	if stats.ActiveUsers, err = h.Users.CountByStatus(ctx, models.StatusActive); err != nil {
		h.statsFailed(w, "count active users", err)
		return
	}
	if stats.SuspendedUsers, err = h.Users.CountByStatus(ctx, models.StatusSuspended); err != nil {
		h.statsFailed(w, "count suspended users", err)
		return
	}
	if stats.Activities, err = h.Activities.CountAdmin(ctx); err != nil {
		h.statsFailed(w, "count admin activities", err)
		return
	}
	recent, err := h.Activities.Recent(ctx, recentActivityLimit)
	if err != nil {
		h.statsFailed(w, "recent activities", err)
		return
	}
	stats.RecentActivities = models.NewActivityViews(recent, h.now())

	WriteJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) statsFailed(w http.ResponseWriter, step string, err error) {
	slog.Error("admin stats", "step", step, "error", err)
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}

// ==========================
// Update Role (PATCH /user/role/{id})
// ==========================

// UpdateRole changes another, non-suspended user's role. When the filter
// excludes the target (self-change, suspended, unknown id) the result reports
// zero matches and the activity is still written.
func (h *AdminHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Role string `json:"role"`
	}
	h.adminUpdate(w, r, &input, func() string { return input.Role }, "role",
		h.Users.UpdateRole, "User role updated successfully")
}

// ==========================
// Update Status (PATCH /user/status/{id})
// ==========================
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	h.adminUpdate(w, r, &input, func() string { return input.Status }, "status",
		h.Users.UpdateStatus, "User status updated successfully")
}

type adminUpdateFunc func(ctx context.Context, id primitive.ObjectID, adminEmail, value string) (*repo.UpdateResult, error)

// adminUpdate runs the shared role/status flow: parse id and body, fetch both
// names, write the change, then log it under the admin's email.
func (h *AdminHandler) adminUpdate(w http.ResponseWriter, r *http.Request, input interface{}, value func() string, field string, update adminUpdateFunc, message string) {
	ctx := r.Context()
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid user id", http.StatusBadRequest)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	v := value()
	if v == "" {
		JSONError(w, field+" is required", http.StatusBadRequest)
		return
	}
	adminEmail := r.URL.Query().Get("email")

	admin, err := optionalUser(h.Users.GetByEmail(ctx, adminEmail))
	if err != nil {
		slog.Error("lookup admin", "email", adminEmail, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	target, err := optionalUser(h.Users.GetByID(ctx, id))
	if err != nil {
		slog.Error("lookup target user", "id", id.Hex(), "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	res, err := update(ctx, id, adminEmail, v)
	if err != nil {
		slog.Error("admin update", "field", field, "id", id.Hex(), "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		slog.Info("admin update matched no user", "field", field, "id", id.Hex(), "admin", adminEmail)
	}

	logActivity(ctx, h.Activities, models.Activity{
		AdminEmail: adminEmail,
		Action:     fmt.Sprintf("%s changed %s's %s to %s", displayName(admin), displayName(target), field, v),
		CreatedAt:  h.now(),
	})
	WriteJSON(w, http.StatusOK, MessageResponse{Message: message, Result: res})
}

// optionalUser treats a missing profile as nil rather than an error.
func optionalUser(u *models.User, err error) (*models.User, error) {
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return u, err
}
