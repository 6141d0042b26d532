package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront-admin/internal/aggregate"
	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
	"storefront-admin/internal/data/repository"
	"storefront-admin/internal/dto/request"
	"storefront-admin/internal/dto/response"
	"storefront-admin/internal/permission"
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	// Public endpoints
	ListReviews(ctx context.Context, actor entity.Actor, req *request.ListReviewsRequest) ([]response.ReviewResponse, error)
	GetReviewStats(ctx context.Context, actor entity.Actor, productID string) (*response.ReviewStats, error)

	// Author or admin
	UpsertReview(ctx context.Context, actor entity.Actor, req *request.UpsertReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, actor entity.Actor, reviewID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	timeout    time.Duration
	log        *zap.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, config *utils.Config, log *zap.Logger) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		timeout:    config.Order.StoreTimeout,
		log:        log.With(zap.String("service", "review")),
	}
}

// ListReviews is part of the public product view, so guests may call it.
func (s *reviewService) ListReviews(ctx context.Context, actor entity.Actor, req *request.ListReviewsRequest) ([]response.ReviewResponse, error) {
	if err := permission.Check(actor, permission.ActionViewProducts, uuid.Nil, ""); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperr.InvalidField("product_id", "This field is required")
	}

	productID, err := parseID("product_id", req.ProductID)
	if err != nil {
		return nil, err
	}
	order, err := aggregate.ParseReviewSort(req.Sort)
	if err != nil {
		return nil, apperr.InvalidField("sort", err.Error())
	}
	filter, err := aggregate.ParseRatingFilter(req.Rating)
	if err != nil {
		return nil, apperr.InvalidField("rating", err.Error())
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	reviews, err := s.reviewRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	reviews = aggregate.SortReviews(aggregate.FilterByRating(reviews, filter), order)

	s.log.Debug("Product reviews retrieved",
		zap.String("product_id", req.ProductID),
		zap.String("sort", string(order)),
		zap.Int("rating", int(filter)),
		zap.Int("count", len(reviews)),
	)

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetReviewStats(ctx context.Context, actor entity.Actor, productID string) (*response.ReviewStats, error) {
	if err := permission.Check(actor, permission.ActionViewProducts, uuid.Nil, ""); err != nil {
		return nil, err
	}

	id, err := parseID("product_id", productID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	reviews, err := s.reviewRepo.FindByProductID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review stats: %w", err)
	}

	stats := response.ReviewStatsToResponse(aggregate.SummarizeReviews(reviews))
	return &stats, nil
}

// UpsertReview creates a review authored by the actor when req.ID is empty,
// and otherwise updates rating and comment of an existing review.
func (s *reviewService) UpsertReview(ctx context.Context, actor entity.Actor, req *request.UpsertReviewRequest) (*response.ReviewResponse, error) {
	// Anyone who cannot edit even their own reviews stops here.
	if err := authorizeReviewChange(actor, permission.ActionEditOwnReview, actor.ID); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, apperr.InvalidField("product_id", "This field is required")
	}
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Upsert review validation failed", zap.Error(err))
		return nil, err
	}
	if !entity.ValidRating(req.Rating) {
		return nil, apperr.InvalidField("rating", "Must be between 1 and 5")
	}

	productID, err := parseID("product_id", req.ProductID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if req.ID == "" {
		return s.createReview(ctx, actor, productID, req)
	}

	reviewID, err := parseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	review, err := s.findForChange(ctx, actor, reviewID, permission.ActionEditOwnReview)
	if err != nil {
		return nil, err
	}

	if review.ProductID != productID {
		return nil, apperr.InvalidField("product_id", "A review cannot move to another product")
	}

	review.Rating = req.Rating
	review.Comment = req.Comment

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", req.ID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", req.ID),
		zap.String("actor_id", actor.ID.String()),
		zap.Bool("moderated", review.UserID != actor.ID),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) createReview(ctx context.Context, actor entity.Actor, productID uuid.UUID, req *request.UpsertReviewRequest) (*response.ReviewResponse, error) {
	existing, err := s.reviewRepo.FindByUserAndProduct(ctx, actor.ID, productID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existing != nil {
		return nil, apperr.InvalidField("product_id", "already reviewed")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    actor.ID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor entity.Actor, reviewID string) error {
	if err := authorizeReviewChange(actor, permission.ActionDeleteOwnReview, actor.ID); err != nil {
		return err
	}

	id, err := parseID("review_id", reviewID)
	if err != nil {
		return err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	review, err := s.findForChange(ctx, actor, id, permission.ActionDeleteOwnReview)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("actor_id", actor.ID.String()),
		zap.String("product_id", review.ProductID.String()),
	)

	return nil
}

// findForChange loads a review and checks the actor may change it. Only
// moderators learn that a review does not exist.
func (s *reviewService) findForChange(ctx context.Context, actor entity.Actor, id uuid.UUID, own permission.Action) (*entity.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}

	if review == nil {
		if permission.Check(actor, permission.ActionModerateReview, uuid.Nil, "") == nil {
			return nil, apperr.NotFound("review", id.String())
		}
		return nil, apperr.PermissionDenied(permission.ReasonNotOwner)
	}

	if err := authorizeReviewChange(actor, own, review.UserID); err != nil {
		s.log.Warn("Review change denied",
			zap.String("review_id", id.String()),
			zap.String("actor_id", actor.ID.String()),
		)
		return nil, err
	}

	return review, nil
}

// authorizeReviewChange allows moderators, then falls back to the owner rule.
func authorizeReviewChange(actor entity.Actor, own permission.Action, ownerID uuid.UUID) error {
	if permission.Check(actor, permission.ActionModerateReview, ownerID, "") == nil {
		return nil
	}
	return permission.Check(actor, own, ownerID, "")
}
