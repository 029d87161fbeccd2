package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-timetable-assistant/internal/http/handlers"
)

type Router struct {
	mux chi.Router
}

// NewRouter mounts the webhook routes and, when adminToken is set, the
// token-guarded admin routes.
func NewRouter(webhookHandler *handlers.WebhookHandler, adminHandler *handlers.AdminHandler, adminToken string) *Router {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)

	webhookHandler.Register(mux)

	if adminHandler != nil && adminToken != "" {
		mux.Group(func(r chi.Router) {
			r.Use(handlers.BearerAuth(adminToken))
			adminHandler.Register(r)
		})
	}

	return &Router{mux: mux}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
