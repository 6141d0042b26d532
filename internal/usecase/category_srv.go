package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

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

type CategoryService interface {
	ListCategories(ctx context.Context, actor entity.Actor) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, actor entity.Actor, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, actor entity.Actor, categoryID string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	timeout      time.Duration
	log          *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, config *utils.Config, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		timeout:      config.Order.StoreTimeout,
		log:          log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) ListCategories(ctx context.Context, actor entity.Actor) ([]response.CategoryResponse, error) {
	if err := permission.Check(actor, permission.ActionViewCategories, uuid.Nil, ""); err != nil {
		return nil, err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	result := make([]response.CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = response.CategoryToResponse(c)
	}
	return result, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, actor entity.Actor, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if err := permission.Check(actor, permission.ActionManageCategories, uuid.Nil, ""); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, apperr.InvalidField("name", "This field is required")
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.InvalidField("name", "This field is required")
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: name,
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created",
		zap.String("category_id", category.ID.String()),
		zap.String("name", name),
		zap.String("actor_id", actor.ID.String()),
	)

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, actor entity.Actor, categoryID string) error {
	if err := permission.Check(actor, permission.ActionManageCategories, uuid.Nil, ""); err != nil {
		return err
	}

	id, err := parseID("category_id", categoryID)
	if err != nil {
		return err
	}

	ctx, cancel := storeContext(ctx, s.timeout)
	defer cancel()

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.log.Info("Category deleted", zap.String("category_id", categoryID), zap.String("actor_id", actor.ID.String()))
	return nil
}
