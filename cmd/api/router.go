package main

import (
	"context"
	"net/http"
	"time"

	"github.com/cyberpeers/cyberpeers-server/internal/auth"
	"github.com/cyberpeers/cyberpeers-server/internal/config"
	"github.com/cyberpeers/cyberpeers-server/internal/db"
	"github.com/cyberpeers/cyberpeers-server/internal/handlers"
	"github.com/cyberpeers/cyberpeers-server/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// deps are the collaborators the router needs. pinger may be nil, in which
// case /ready always reports ready.
type deps struct {
	users      handlers.UserStore
	activities handlers.ActivityStore
	verifier   auth.Verifier
	pinger     db.Pinger
}

func newRouter(d deps, cfg config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(int64(cfg.MaxBodyBytes)))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Cyberpeers Server is running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", readyHandler(d.pinger))
	r.Handle("/metrics", promhttp.Handler())

	userH := &handlers.UserHandler{Users: d.users, Activities: d.activities}
	adminH := &handlers.AdminHandler{Users: d.users, Activities: d.activities}

	r.Group(func(r chi.Router) {
		r.Use(middleware.VerifyToken(d.verifier))

		r.Post("/user", userH.CreateOrLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.VerifyEmail)
			r.Get("/user", userH.GetUser)
			r.Patch("/user/profile", userH.UpdateProfile)
			r.Get("/user/activities", userH.ListActivities)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.VerifyAdmin(d.users))
			r.Get("/users", adminH.ListUsers)
			r.Get("/admin/stats", adminH.Stats)
			r.Patch("/user/role/{id}", adminH.UpdateRole)
			r.Patch("/user/status/{id}", adminH.UpdateStatus)
		})
	})

	return r
}

func readyHandler(p db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx, readpref.Primary()); err != nil {
				handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Write([]byte("ready"))
	}
}
