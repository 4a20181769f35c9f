package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"skyguide/internal/domain"
	"skyguide/internal/repository"
)

// DemoUser describes the account requests act as when they do not name a caller.
type DemoUser struct {
	Username string
	Email    string
	Password string
}

// UserService describes user lifecycle operations.
type UserService interface {
	EnsureDemoUser(ctx context.Context, demo DemoUser) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// EnsureDemoUser creates the demo account unless a user with that name already exists.
func (s *userService) EnsureDemoUser(ctx context.Context, demo DemoUser) (*domain.User, error) {
	username := strings.TrimSpace(demo.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "is required")
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return sanitizeUser(existing), nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(demo.Email),
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", id)
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
