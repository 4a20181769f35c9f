package repository

import (
	"context"

	"skyguide/internal/domain"
)

// UserRepository defines storage operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
