package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/services"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/cache"
	"github.com/kaanaktas/campushub/internal/pkg/helpers"
)

const lostItemsPath = "/api/v1/lost-items"

// LostItemController handles lost-and-found endpoints
type LostItemController struct {
	lostItemService *services.LostItemService
	cache           cache.Store
}

// NewLostItemController creates a new lost item controller
func NewLostItemController(lostItemService *services.LostItemService, store cache.Store) *LostItemController {
	return &LostItemController{lostItemService: lostItemService, cache: store}
}

// Create godoc
// @Summary Post a listing
// @Description Reports a lost or found item. Status defaults to lost.
// @Tags lost-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLostItemRequest true "Listing details"
// @Success 201 {object} dto.APIResponse{data=models.LostItem}
// @Router /lost-items [post]
func (lc *LostItemController) Create(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	var req dto.CreateLostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	item, err := lc.lostItemService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), lc.cache, lostItemsPath)
	c.JSON(http.StatusCreated, dto.Success(item))
}

// GetAll godoc
// @Summary List listings
// @Tags lost-items
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(lost, found, claimed, returned)
// @Param category query string false "Filter by category"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.LostItem}
// @Router /lost-items [get]
func (lc *LostItemController) GetAll(c *gin.Context) {
	page, limit := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	var status *models.LostItemStatus
	if raw := c.Query("status"); raw != "" {
		s := models.LostItemStatus(raw)
		status = &s
	}
	var category *string
	if raw := c.Query("category"); raw != "" {
		category = &raw
	}

	items, total, err := lc.lostItemService.GetAll(c.Request.Context(), status, category, int(offset), limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPage(items, len(items), helpers.NewPaginationInfo(total, page, limit)))
}

// GetByID godoc
// @Summary Get a listing
// @Tags lost-items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} dto.APIResponse{data=models.LostItem}
// @Failure 404 {object} dto.ErrorResponse
// @Router /lost-items/{id} [get]
func (lc *LostItemController) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	item, err := lc.lostItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(item))
}

// Update godoc
// @Summary Update a listing
// @Description Partial update. Only the owner or an admin may edit.
// @Tags lost-items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Param request body dto.UpdateLostItemRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.LostItem}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lost-items/{id} [put]
func (lc *LostItemController) Update(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateLostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	item, err := lc.lostItemService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), lc.cache, lostItemsPath)
	c.JSON(http.StatusOK, dto.Success(item))
}

// Delete godoc
// @Summary Delete a listing
// @Description Only the owner or an admin may delete.
// @Tags lost-items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Listing ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lost-items/{id} [delete]
func (lc *LostItemController) Delete(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := lc.lostItemService.Delete(c.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), lc.cache, lostItemsPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Listing deleted"))
}
