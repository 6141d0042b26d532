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

type UserService interface {
	ListUsers(ctx context.Context, actor entity.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, actor entity.Actor, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, actor entity.Actor, userID string) error
}

type userService struct {
	repo    *repository.Repository
	timeout time.Duration
	log     *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, log *zap.Logger) UserService {
	return &userService{
		repo:    repo,
		timeout: config.Order.StoreTimeout,
		log:     log.With(zap.String("service", "user")),
	}
}

func (us *userService) ListUsers(ctx context.Context, actor entity.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := permission.Check(actor, permission.ActionListUsers, uuid.Nil, ""); err != nil {
		return nil, err
	}

	if req == nil {
		req = &request.PaginatedRequest{}
	}
	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	ctx, cancel := storeContext(ctx, us.timeout)
	defer cancel()

	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

// UpdateUser applies an administrative patch to another user's account.
func (us *userService) UpdateUser(ctx context.Context, actor entity.Actor, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	id, err := parseID("user_id", userID)
	if err != nil {
		return nil, err
	}

	// Rejects non-admins and self-edits before anything is read.
	if err := permission.Check(actor, permission.ActionEditUser, id, ""); err != nil {
		return nil, err
	}

	if req == nil {
		req = &request.UpdateUserRequest{}
	}
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	var role entity.UserRole
	if req.Role != nil {
		if role, err = entity.ParseRole(*req.Role); err != nil {
			return nil, apperr.InvalidField("role", err.Error())
		}
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.InvalidField("name", "This field is required")
	}

	ctx, cancel := storeContext(ctx, us.timeout)
	defer cancel()

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}

	if err := permission.Check(actor, permission.ActionEditUser, user.ID, user.Role); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		user.Role = role
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now()

	if err := us.repo.User.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	us.log.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()),
		zap.Bool("role_changed", req.Role != nil),
		zap.Bool("password_changed", req.Password != nil),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, actor entity.Actor, userID string) error {
	id, err := parseID("user_id", userID)
	if err != nil {
		return err
	}

	if err := permission.Check(actor, permission.ActionDeleteUser, id, ""); err != nil {
		return err
	}

	ctx, cancel := storeContext(ctx, us.timeout)
	defer cancel()

	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("id", userID))
		return fmt.Errorf("delete user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("user", userID)
	}

	// The target's role is only known now; admins are never deleted.
	if err := permission.Check(actor, permission.ActionDeleteUser, user.ID, user.Role); err != nil {
		us.log.Warn("Delete user denied",
			zap.String("user_id", userID),
			zap.String("actor_id", actor.ID.String()),
			zap.Error(err),
		)
		return err
	}

	if err := us.repo.User.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if err := us.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		us.log.Warn("Failed to revoke sessions of deleted user",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		// Continue anyway
	}

	us.log.Info("User deleted", zap.String("user_id", id.String()), zap.String("email", user.Email))
	return nil
}
