package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aironlab/backend/internal/middleware"
)

type RouterDeps struct {
	Posts   *PostsHandler
	Contact *ContactHandler
	Health  http.HandlerFunc
	Logger  *slog.Logger
	APIKey  string
}

// NewRouter assembles the API surface. Reading posts and submitting the
// contact form are public; everything else sits behind the API key guard.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(d.Logger))

	r.Get("/health", d.Health)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", d.Posts.List())
		r.Get("/{idOrSlug}", d.Posts.Get())

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKey(d.APIKey))
			r.Post("/", d.Posts.Create())
			r.Put("/{id}", d.Posts.Update())
			r.Delete("/{id}", d.Posts.Delete())
			r.Post("/{id}/image", d.Posts.UploadImage())
		})
	})

	r.Route("/api/contact", func(r chi.Router) {
		r.Post("/", d.Contact.Create())

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKey(d.APIKey))
			r.Get("/", d.Contact.List())
			r.Patch("/{id}/status", d.Contact.UpdateStatus())
			r.Patch("/{id}/notes", d.Contact.UpdateNotes())
			r.Delete("/{id}", d.Contact.Delete())
		})
	})

	return r
}
