package wire

import (
	"storefront-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, guards sessionGuards) {
	// ==================== PROTECTED USER ROUTES ====================
	r.With(guards.required).Route("/api/user/orders", func(r chi.Router) {
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)
	})

	// ==================== ADMIN ROUTES ====================
	r.With(guards.required).Route("/api/admin/orders", func(r chi.Router) {
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Put("/{id}/status", orderHandler.SetOrderStatus) // body: {"status": "shipped"}
	})
}
