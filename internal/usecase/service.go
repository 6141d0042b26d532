package usecase

import (
	"context"
	"time"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/repository"
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Order    OrderService
	Review   ReviewService
	Category CategoryService
	Stats    StatsService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		User:     NewUserService(repo, config, log),
		Order:    NewOrderService(repo.Order, config, log),
		Review:   NewReviewService(repo.Review, config, log),
		Category: NewCategoryService(repo.Category, config, log),
		Stats:    NewStatsService(repo, config, log),
	}
}

// storeContext bounds the persistence calls of one service operation.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func parseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperr.InvalidField(field, "Must be a valid UUID")
	}
	return id, nil
}
