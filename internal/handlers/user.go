package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"github.com/cyberpeers/cyberpeers-server/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
)

// protectedProfileFields cannot be changed through PATCH /user/profile.
var protectedProfileFields = []string{"_id", "email", "role", "status", "createdAt"}

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Users      UserStore
	Activities ActivityStore
	// Now defaults to time.Now.
	Now func() time.Time
}

func (h *UserHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// ==========================
// Create Or Login (POST /user)
// ==========================

// CreateOrLogin creates the profile on first sight of an email and records a
// login for every later call. The body's role and status are always replaced
// by the defaults; on the login path only last_loggedIn is written.
func (h *UserHandler) CreateOrLogin(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	email, _ := body["email"].(string)
	if email == "" {
		JSONError(w, "email is required", http.StatusBadRequest)
		return
	}
	name, _ := body["name"].(string)

	now := h.now()
	delete(body, "_id")
	body["role"] = models.RoleUser
	body["status"] = models.StatusActive

	existing, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		slog.Error("lookup user", "email", email, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if existing == nil {
		body["createdAt"] = now
		body["last_loggedIn"] = now
		res, err := h.Users.Create(r.Context(), bson.M(body))
		if err != nil {
			slog.Error("create user", "email", email, "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
		logActivity(r.Context(), h.Activities, models.Activity{
			UserEmail: email,
			Action:    fmt.Sprintf("%s created an account", nameOr(name, nil)),
			CreatedAt: now,
		})
		WriteJSON(w, http.StatusOK, MessageResponse{Message: "User created successfully", Result: res})
		return
	}

	res, err := h.Users.UpdateLastLogin(r.Context(), email, now)
	if err != nil {
		slog.Error("update last login", "email", email, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	logActivity(r.Context(), h.Activities, models.Activity{
		UserEmail: email,
		Action:    fmt.Sprintf("%s Logged in", nameOr(name, existing)),
		CreatedAt: now,
	})
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "User already exists, login time updated", Result: res})
}

// ==========================
// Get User (GET /user)
// ==========================
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	user, err := h.Users.GetByEmail(r.Context(), email)
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("get user", "email", email, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	out := user.Fields()
	out["daysActive"] = models.ElapsedDays(user.CreatedAt, h.now())
	WriteJSON(w, http.StatusOK, out)
}

// ==========================
// Update Profile (PATCH /user/profile)
// ==========================
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	for _, k := range protectedProfileFields {
		delete(fields, k)
	}
	if len(fields) == 0 {
		JSONError(w, "no profile fields to update", http.StatusBadRequest)
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		slog.Error("lookup user", "email", email, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	res, err := h.Users.UpdateProfile(r.Context(), email, bson.M(fields))
	if err != nil {
		slog.Error("update profile", "email", email, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	logActivity(r.Context(), h.Activities, models.Activity{
		UserEmail: email,
		Action:    fmt.Sprintf("%s updated their profile", displayName(user)),
		CreatedAt: h.now(),
	})
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Profile updated successfully", Result: res})
}

// ==========================
// List Activities (GET /user/activities)
// ==========================
func (h *UserHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	entries, err := h.Activities.ListByActor(r.Context(), email)
	if err != nil {
		slog.Error("list activities", "email", email, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	WriteJSON(w, http.StatusOK, models.NewActivityViews(entries, h.now()))
}

// nameOr prefers the name sent in the request, then the stored one.
func nameOr(name string, u *models.User) string {
	if name != "" {
		return name
	}
	return displayName(u)
}
