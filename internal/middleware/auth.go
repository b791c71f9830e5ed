package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cyberpeers/cyberpeers-server/internal/auth"
	"github.com/cyberpeers/cyberpeers-server/internal/handlers"
	"github.com/cyberpeers/cyberpeers-server/internal/models"
	"github.com/cyberpeers/cyberpeers-server/internal/repo"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type key string

const IdentityKey key = "identity"

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// RoleLookup finds the profile whose role gates admin routes.
type RoleLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// GetIdentity returns the identity attached by VerifyToken.
func GetIdentity(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*auth.Identity)
	return id, ok && id != nil
}

// VerifyToken requires "Authorization: Bearer <token>". A missing or malformed
// header is 401; a token the verifier rejects is 403.
func VerifyToken(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				handlers.JSONError(w, msgUnauthorized, http.StatusUnauthorized)
				return
			}

			id, err := v.Verify(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				slog.Debug("token rejected", "request_id", chimw.GetReqID(r.Context()), "error", err)
				handlers.JSONError(w, msgForbidden, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// VerifyEmail requires the email query parameter to equal the verified
// identity's email. It never touches the store.
func VerifyEmail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetIdentity(r.Context())
		if !ok || id.Email == "" || r.URL.Query().Get("email") != id.Email {
			handlers.JSONError(w, msgForbidden, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// VerifyAdmin requires the profile named by the email query parameter to have
// the admin role. Refusals echo the role found, or null when there is no profile.
func VerifyAdmin(users RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := r.URL.Query().Get("email")
			user, err := users.GetByEmail(r.Context(), email)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				slog.Error("admin lookup failed", "request_id", chimw.GetReqID(r.Context()), "error", err)
				handlers.JSONError(w, handlers.ErrMessageInternal, http.StatusInternalServerError)
				return
			}

			if user == nil || user.Role != models.RoleAdmin {
				var role interface{}
				if user != nil {
					role = user.Role
				}
				handlers.WriteJSON(w, http.StatusForbidden, map[string]interface{}{"message": msgForbidden, "role": role})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
