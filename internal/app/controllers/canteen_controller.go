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

const canteenPath = "/api/v1/canteen"

// CanteenController handles canteen menu and order endpoints
type CanteenController struct {
	canteenService *services.CanteenService
	cache          cache.Store
}

// NewCanteenController creates a new canteen controller
func NewCanteenController(canteenService *services.CanteenService, store cache.Store) *CanteenController {
	return &CanteenController{canteenService: canteenService, cache: store}
}

// CreateProduct godoc
// @Summary Add a product
// @Tags canteen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.APIResponse{data=models.CanteenProduct}
// @Failure 400 {object} dto.ErrorResponse
// @Router /canteen/products [post]
func (cc *CanteenController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	p, err := cc.canteenService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusCreated, dto.Success(p))
}

// ListProducts godoc
// @Summary List the menu
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param available query bool false "Only available items"
// @Success 200 {object} dto.APIResponse{data=[]models.CanteenProduct}
// @Router /canteen/products [get]
func (cc *CanteenController) ListProducts(c *gin.Context) {
	var category *string
	if raw := c.Query("category"); raw != "" {
		category = &raw
	}
	availableOnly := c.Query("available") == "true"

	products, err := cc.canteenService.ListProducts(c.Request.Context(), category, availableOnly)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessCount(products, len(products)))
}

// GetProduct godoc
// @Summary Get a product
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} dto.APIResponse{data=models.CanteenProduct}
// @Failure 404 {object} dto.ErrorResponse
// @Router /canteen/products/{id} [get]
func (cc *CanteenController) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	p, err := cc.canteenService.GetProduct(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(p))
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags canteen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body dto.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.CanteenProduct}
// @Failure 404 {object} dto.ErrorResponse
// @Router /canteen/products/{id} [put]
func (cc *CanteenController) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	p, err := cc.canteenService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusOK, dto.Success(p))
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /canteen/products/{id} [delete]
func (cc *CanteenController) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.canteenService.DeleteProduct(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusOK, dto.SuccessMessage("Product deleted"))
}

// CreateOrder godoc
// @Summary Place an order
// @Description Creates an order for the current user. Stock for every line is decremented atomically; any failing line rejects the whole order. The total is computed server-side.
// @Tags canteen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Order lines"
// @Success 201 {object} dto.APIResponse{data=models.CanteenOrder}
// @Failure 400 {object} dto.ErrorResponse
// @Router /canteen/orders [post]
func (cc *CanteenController) CreateOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	order, err := cc.canteenService.CreateOrder(c.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusCreated, dto.Success(order))
}

// ListOrders godoc
// @Summary List orders
// @Description Lists orders newest first. Students see only their own.
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.CanteenOrder}
// @Router /canteen/orders [get]
func (cc *CanteenController) ListOrders(c *gin.Context) {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	page, limit := helpers.ParsePaginationParams(c)
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		normalized, ok := models.NormalizeOrderStatus(raw)
		if !ok {
			middleware.HandleAPIError(c, apperrors.ErrInvalidOrderStatus)
			return
		}
		status = &normalized
	}

	orders, total, err := cc.canteenService.ListOrders(c.Request.Context(), actor, status, offset, limit)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPage(orders, len(orders), helpers.NewPaginationInfo(total, page, limit)))
}

// GetOrder godoc
// @Summary Get an order
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.APIResponse{data=models.CanteenOrder}
// @Failure 404 {object} dto.ErrorResponse
// @Router /canteen/orders/{id} [get]
func (cc *CanteenController) GetOrder(c *gin.Context) {
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

	order, err := cc.canteenService.GetOrder(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(order))
}

// UpdateOrderStatus godoc
// @Summary Update an order's status
// @Description Transitions an order. Status casing is normalized; cancelling restores stock exactly once.
// @Tags canteen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body dto.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.CanteenOrder}
// @Failure 400 {object} dto.ErrorResponse
// @Router /canteen/orders/{id}/status [put]
func (cc *CanteenController) UpdateOrderStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	order, err := cc.canteenService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusOK, dto.Success(order))
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Cancels an order that is not yet completed, restoring stock. Students may only cancel their own orders.
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.APIResponse{data=models.CanteenOrder}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /canteen/orders/{id}/cancel [put]
func (cc *CanteenController) CancelOrder(c *gin.Context) {
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

	order, err := cc.canteenService.CancelOrder(c.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusOK, dto.Success(order))
}

// UpdatePaymentStatus godoc
// @Summary Update an order's payment status
// @Tags canteen
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body dto.UpdatePaymentStatusRequest true "New payment status"
// @Success 200 {object} dto.APIResponse{data=models.CanteenOrder}
// @Failure 400 {object} dto.ErrorResponse
// @Router /canteen/orders/{id}/payment [put]
func (cc *CanteenController) UpdatePaymentStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	order, err := cc.canteenService.UpdatePaymentStatus(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	invalidate(c.Request.Context(), cc.cache, canteenPath)
	c.JSON(http.StatusOK, dto.Success(order))
}

// Dashboard godoc
// @Summary Canteen dashboard
// @Description Today's order counts, revenue and low-stock products
// @Tags canteen
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CanteenDashboardResponse}
// @Router /canteen/dashboard [get]
func (cc *CanteenController) Dashboard(c *gin.Context) {
	dashboard, err := cc.canteenService.Dashboard(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(dashboard))
}
