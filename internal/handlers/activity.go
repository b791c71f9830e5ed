package handlers

import (
	"context"
	"log/slog"

	"github.com/cyberpeers/cyberpeers-server/internal/metrics"
	"github.com/cyberpeers/cyberpeers-server/internal/models"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const unknownName = "Unknown user"

// logActivity appends entry after the primary write has happened. Failures are
// logged and counted but never reach the client, and nothing is rolled back.
func logActivity(ctx context.Context, store ActivityStore, entry models.Activity) {
	if store == nil {
		return
	}
	if _, err := store.Log(ctx, entry); err != nil {
		metrics.IncActivitiesLogged(false)
		slog.Warn("activity log write failed",
			"request_id", chimw.GetReqID(ctx),
			"actor", entry.Actor(),
			"action", entry.Action,
			"error", err)
		return
	}
	metrics.IncActivitiesLogged(true)
}

// displayName is the name used in activity text; a missing profile or an
// empty name renders as unknownName.
func displayName(u *models.User) string {
	if u == nil || u.Name == "" {
		return unknownName
	}
	return u.Name
}
