package wire

import (
	"storefront-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler, guards sessionGuards) {
	r.With(guards.optional).Get("/api/categories", categoryHandler.ListCategories)

	r.With(guards.required).Route("/api/admin/categories", func(r chi.Router) {
		r.Post("/", categoryHandler.CreateCategory)
		r.Delete("/{id}", categoryHandler.DeleteCategory)
	})
}
