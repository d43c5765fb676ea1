package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// UserService handles user profile and admin directory operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns the user directory for the admin dashboard
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams) ([]entity.User, int64, error) {
	return s.userRepo.List(ctx, params)
}

// UpdateProfileInput represents the profile update input; nil fields are
// left unchanged
type UpdateProfileInput struct {
	Name     *string
	Photo    *string
	Location *string
}

// UpdateProfile applies a partial update to the requester's own profile
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input *UpdateProfileInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}
	if input.Location != nil {
		user.Location = input.Location
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account, admin only
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}
