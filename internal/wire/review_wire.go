package wire

import (
	"storefront-admin/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler, guards sessionGuards) {
	// ==================== PUBLIC ROUTES ====================
	r.With(guards.optional).Route("/api/products/{id}", func(r chi.Router) {
		r.Get("/reviews", reviewHandler.ListProductReviews)         // ?sort=newest&rating=5
		r.Get("/review-stats", reviewHandler.GetProductReviewStats) // average & distribution
	})

	// ==================== PROTECTED ROUTES ====================
	r.With(guards.required).Route("/api/reviews", func(r chi.Router) {
		r.Post("/", reviewHandler.CreateReview)
		r.Put("/{id}", reviewHandler.UpdateReview)
		r.Delete("/{id}", reviewHandler.DeleteReview)
	})
}
