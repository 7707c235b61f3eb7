// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Interior AI server. Catalog and health routes are public; generation
// and likes require a session.
package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"interiorai/internal/handlers"
	"interiorai/internal/middleware"
)

// Deps holds everything the routes need.
type Deps struct {
	Sessions  middleware.SessionReader
	Providers handlers.ProviderStatus
	Redesign  *handlers.Redesign
	Limiter   *middleware.RateLimiter // guards the generate route
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(d.Sessions))

	r.Get("/health", handlers.Health(d.Providers))

	r.Route("/redesign/api", func(r chi.Router) {
		// Static catalogs, no auth.
		r.Get("/styles", handlers.Styles)
		r.Get("/room-types", handlers.RoomTypes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.With(d.Limiter.Middleware).Post("/generate", d.Redesign.Generate)
			r.Post("/designs/{id}/like", d.Redesign.Like)
			r.Get("/designs/liked", d.Redesign.Saved)
		})
	})

	return r
}
