package repository

import (
	"storefront-admin/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Order    OrderRepository
	Review   ReviewRepository
	Category CategoryRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Order:    NewOrderRepository(db, log),
		Review:   NewReviewRepository(db, log),
		Category: NewCategoryRepository(db, log),
	}
}
