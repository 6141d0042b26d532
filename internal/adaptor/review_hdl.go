package adaptor

import (
	"encoding/json"
	"net/http"

	"storefront-admin/internal/dto/request"
	"storefront-admin/internal/usecase"
	"storefront-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// ListProductReviews handles GET /api/products/{id}/reviews?sort=&rating= (public)
func (h *ReviewHandler) ListProductReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListReviewsRequest{
		ProductID: chi.URLParam(r, "id"),
		Sort:      query.Get("sort"),
		Rating:    query.Get("rating"),
	}

	reviews, err := h.service.ListReviews(r.Context(), utils.GetActorFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list product reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetProductReviewStats handles GET /api/products/{id}/review-stats (public)
func (h *ReviewHandler) GetProductReviewStats(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	stats, err := h.service.GetReviewStats(r.Context(), utils.GetActorFromContext(r.Context()), productID)
	if err != nil {
		handleServiceError(w, h.log, err, "get product review stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpsertReview(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// UpdateReview handles PUT /api/reviews/{id} (protected)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	review, err := h.service.UpsertReview(r.Context(), utils.GetActorFromContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /api/reviews/{id} (protected)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "id")

	if err := h.service.DeleteReview(r.Context(), utils.GetActorFromContext(r.Context()), reviewID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
