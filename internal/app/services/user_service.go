package services

import (
	"context"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// UserService handles user directory operations.
type UserService struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetAll lists users, optionally filtered by role.
func (s *UserService) GetAll(ctx context.Context, role *models.RoleType, offset uint64, limit int) ([]*models.User, int64, error) {
	if role != nil && !models.ValidRole(*role) {
		return nil, 0, apperrors.NewBadRequestError("unknown role: " + string(*role))
	}
	return s.userRepo.GetAll(ctx, role, offset, limit)
}

// GetByID retrieves one user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Update applies a partial profile update. Role and activation fields are only
// honored when the actor is an admin; users edit their own profile otherwise.
func (s *UserService) Update(ctx context.Context, actor *models.User, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if actor.RoleType != models.RoleAdmin && actor.ID != id {
		return nil, apperrors.ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.CGPA != nil {
		user.CGPA = req.CGPA
	}
	if req.Degree != nil {
		user.Degree = req.Degree
	}
	if req.Batch != nil {
		user.Batch = req.Batch
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}

	if actor.RoleType == models.RoleAdmin {
		if req.Role != nil {
			role := models.RoleType(*req.Role)
			if !models.ValidRole(role) {
				return nil, apperrors.NewBadRequestError("unknown role: " + *req.Role)
			}
			user.RoleType = role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
	} else if req.Role != nil || req.IsActive != nil {
		return nil, apperrors.NewForbiddenError("only admins can change roles or activation")
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}
