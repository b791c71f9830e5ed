package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/cyberpeers/cyberpeers-server/internal/handlers"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recoverer turns a panic in a handler into a logged stack trace and a 500
// {"message"} body.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("panic recovered",
				"request_id", chimw.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()))
			handlers.JSONError(w, handlers.ErrMessageInternal, http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
