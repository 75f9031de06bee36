package services

import (
	"context"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// LostItemService handles the lost-and-found board.
type LostItemService struct {
	repo *repositories.LostItemRepository
}

// NewLostItemService creates a new lost item service
func NewLostItemService(repo *repositories.LostItemRepository) *LostItemService {
	return &LostItemService{repo: repo}
}

// Create posts a listing. The status defaults to lost.
func (s *LostItemService) Create(ctx context.Context, ownerID int64, req *dto.CreateLostItemRequest) (*models.LostItem, error) {
	status := models.LostItemStatus(req.Status)
	if status == "" {
		status = models.LostItemLost
	}
	if !models.ValidLostItemStatus(status) {
		return nil, apperrors.NewBadRequestError("unknown lost item status: " + req.Status)
	}

	item := &models.LostItem{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		Status:      status,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID retrieves one listing.
func (s *LostItemService) GetByID(ctx context.Context, id int64) (*models.LostItem, error) {
	return s.repo.GetByID(ctx, id)
}

// GetAll lists listings, optionally filtered by status and category.
func (s *LostItemService) GetAll(ctx context.Context, status *models.LostItemStatus, category *string, offset, limit int) ([]*models.LostItem, int64, error) {
	if status != nil && !models.ValidLostItemStatus(*status) {
		return nil, 0, apperrors.NewBadRequestError("unknown lost item status: " + string(*status))
	}
	return s.repo.GetAll(ctx, status, category, offset, limit)
}

// Update applies a partial update. Only the owner or an admin may edit.
func (s *LostItemService) Update(ctx context.Context, actor *models.User, id int64, req *dto.UpdateLostItemRequest) (*models.LostItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.RoleType != models.RoleAdmin && item.OwnerID != actor.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Category != nil {
		item.Category = req.Category
	}
	if req.Location != nil {
		item.Location = req.Location
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.Status != nil {
		status := models.LostItemStatus(*req.Status)
		if !models.ValidLostItemStatus(status) {
			return nil, apperrors.NewBadRequestError("unknown lost item status: " + *req.Status)
		}
		item.Status = status
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a listing. Only the owner or an admin may delete.
func (s *LostItemService) Delete(ctx context.Context, actor *models.User, id int64) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor.RoleType != models.RoleAdmin && item.OwnerID != actor.ID {
		return apperrors.ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
