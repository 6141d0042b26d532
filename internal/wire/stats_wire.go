package wire

import (
	"storefront-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireStats(r chi.Router, statsHandler *adaptor.StatsHandler, guards sessionGuards) {
	r.With(guards.required).Get("/api/admin/stats", statsHandler.GetDashboard)
}
