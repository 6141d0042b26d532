package response

import (
	"time"

	"storefront-admin/internal/aggregate"
	"storefront-admin/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ProductID    string    `json:"product_id"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment,omitempty"`
	HelpfulCount int       `json:"helpful_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewStats struct {
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int         `json:"review_count"`
	Distribution  map[int]int `json:"distribution"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		UserID:       review.UserID.String(),
		ProductID:    review.ProductID.String(),
		Rating:       review.Rating,
		Comment:      review.Comment,
		HelpfulCount: review.HelpfulCount,
		CreatedAt:    review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}

func ReviewStatsToResponse(stats aggregate.ReviewStats) ReviewStats {
	return ReviewStats{
		AverageRating: stats.AverageRating,
		ReviewCount:   stats.Count,
		Distribution:  stats.Distribution,
	}
}
