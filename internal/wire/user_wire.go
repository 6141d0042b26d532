package wire

import (
	"storefront-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures user management routes. Only the session is checked
// here; the user service enforces the admin rules.
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, guards sessionGuards) {
	// ==================== ADMIN ROUTES ====================
	r.With(guards.required).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)         // GET /api/admin/users?page=1&per_page=10
		r.Patch("/{id}", userHandler.UpdateUser)  // PATCH /api/admin/users/{user-id}
		r.Delete("/{id}", userHandler.DeleteUser) // DELETE /api/admin/users/{user-id}
	})
}
