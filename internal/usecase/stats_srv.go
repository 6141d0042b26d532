package usecase

import (
	"context"
	"fmt"
	"time"

	"storefront-admin/internal/aggregate"
	"storefront-admin/internal/data/entity"
	"storefront-admin/internal/data/repository"
	"storefront-admin/internal/dto/response"
	"storefront-admin/internal/permission"
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StatsService interface {
	GetDashboard(ctx context.Context, actor entity.Actor) (*response.DashboardResponse, error)
}

type statsService struct {
	repo    *repository.Repository
	timeout time.Duration
	log     *zap.Logger
}

func NewStatsService(repo *repository.Repository, config *utils.Config, log *zap.Logger) StatsService {
	return &statsService{
		repo:    repo,
		timeout: config.Order.StoreTimeout,
		log:     log.With(zap.String("service", "stats")),
	}
}

// GetDashboard aggregates over the full order, user and review sets. Every
// figure is derived on the spot; nothing is cached between calls.
func (s *statsService) GetDashboard(ctx context.Context, actor entity.Actor) (*response.DashboardResponse, error) {
	if err := permission.Check(actor, permission.ActionViewStats, uuid.Nil, ""); err != nil {
		return nil, err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	orders, err := s.repo.Order.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard orders: %w", err)
	}

	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard users: %w", err)
	}

	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard reviews: %w", err)
	}

	orderStats := aggregate.SummarizeOrders(orders)

	s.log.Debug("Dashboard computed",
		zap.Int("orders", orderStats.Count),
		zap.Int("users", len(users)),
		zap.Int("reviews", len(reviews)),
	)

	return &response.DashboardResponse{
		Orders:      response.OrderStatsToResponse(orderStats),
		Reviews:     response.ReviewStatsToResponse(aggregate.SummarizeReviews(reviews)),
		UsersByRole: aggregate.CountByRole(users),
	}, nil
}
