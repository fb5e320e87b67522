package services

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
	"github.com/bporter/mcattrainer/internal/models"
	"github.com/bporter/mcattrainer/internal/repository"
	"github.com/bporter/mcattrainer/internal/repository/sqlite"
)

// UserService handles user accounts
type UserService interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, name string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", id)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}

	user, err := s.userRepo.Create(ctx, name)
	if err != nil {
		if goerrors.Is(err, sqlite.ErrDuplicateName) {
			return nil, errors.NewConflictError("a user with that name already exists")
		}
		logger.FromContext(ctx).Error("failed to create user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}
