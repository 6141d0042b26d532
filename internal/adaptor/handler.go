package adaptor

import (
	"storefront-admin/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Order    *OrderHandler
	Review   *ReviewHandler
	Category *CategoryHandler
	Stats    *StatsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Order:    NewOrderHandler(service.Order, log),
		Review:   NewReviewHandler(service.Review, log),
		Category: NewCategoryHandler(service.Category, log),
		Stats:    NewStatsHandler(service.Stats, log),
	}
}
