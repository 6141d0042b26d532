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
	"storefront-admin/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a bearer token to the actor it belongs to.
	Authenticate(ctx context.Context, token string) (entity.Actor, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if req == nil {
		return nil, apperr.InvalidField("email", "This field is required")
	}
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	ctx, cancel := storeContext(ctx, s.config.Order.StoreTimeout)
	defer cancel()

	// 2. Find user by email
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("login: %w", err)
	}

	// 3. User not found
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", email))
		return nil, apperr.ErrUnauthenticated
	}

	// 4. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperr.ErrUnauthenticated
	}

	// 5. Create session
	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// 1. Parse token
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		s.log.Warn("Invalid token format", zap.Error(err))
		return apperr.InvalidField("token", "Must be a valid UUID")
	}

	ctx, cancel := storeContext(ctx, s.config.Order.StoreTimeout)
	defer cancel()

	// 2. Revoke session
	if err := s.repo.Session.Revoke(ctx, tokenUUID.String()); err != nil {
		s.log.Warn("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

// Authenticate returns apperr.ErrUnauthenticated for unknown, expired and
// revoked tokens, and for sessions whose user has since been deleted.
func (s *authService) Authenticate(ctx context.Context, token string) (entity.Actor, error) {
	if _, err := uuid.Parse(token); err != nil {
		return entity.GuestActor(), apperr.ErrUnauthenticated
	}

	ctx, cancel := storeContext(ctx, s.config.Order.StoreTimeout)
	defer cancel()

	session, err := s.repo.Session.FindValidSession(ctx, token)
	if err != nil {
		return entity.GuestActor(), fmt.Errorf("authenticate: %w", err)
	}
	if session == nil {
		return entity.GuestActor(), apperr.ErrUnauthenticated
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return entity.GuestActor(), fmt.Errorf("authenticate: %w", err)
	}
	if user == nil {
		s.log.Warn("Session belongs to a missing user", zap.String("user_id", session.UserID.String()))
		return entity.GuestActor(), apperr.ErrUnauthenticated
	}

	return entity.Actor{ID: user.ID, Role: user.Role}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
