package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blogem/campus-admin/middleware"
)

// Mount registers every route on r. With requireAuth the login routes are
// added and the API is put behind RequireAuth.
func (c *Controllers) Mount(r chi.Router, requireAuth bool) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "campus-admin"})
	})

	if requireAuth {
		r.Get("/login", c.Auth.Login)
		r.Get("/callback", c.Auth.Callback)
		r.Get("/logout", c.Auth.Logout)
	}

	r.Group(func(r chi.Router) {
		if requireAuth {
			r.Use(middleware.RequireAuth)
			r.Get("/me", c.Auth.Me)
		}

		r.Route("/api/students", func(r chi.Router) {
			r.Get("/", c.Students.List)
			r.Post("/", c.Students.Create)
			r.Get("/{studentID}", c.Students.Get)
			r.Patch("/{studentID}", c.Students.Update)
			r.Delete("/{studentID}", c.Students.Delete)
			r.Get("/{studentID}/activity", c.Students.Activity)
		})

		r.Route("/api/analytics", func(r chi.Router) {
			r.Get("/total", c.Analytics.Total)
			r.Get("/departments", c.Analytics.Departments)
			r.Get("/recent", c.Analytics.Recent)
			r.Get("/active", c.Analytics.Active)
		})

		r.Route("/api/faq", func(r chi.Router) {
			r.Get("/library", c.FAQ.LibraryName)
			r.Get("/library/hours", c.FAQ.LibraryHours)
			r.Get("/cafeteria", c.FAQ.CafeteriaName)
			r.Get("/cafeteria/hours", c.FAQ.CafeteriaTimings)
			r.Get("/lunch", c.FAQ.LunchTiming)
		})

		r.Post("/chat", c.Chat.Ask)
	})
}
