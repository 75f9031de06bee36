package services

import (
	"context"
	"math"
	"time"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/helpers"
	"github.com/kaanaktas/campushub/internal/pkg/logger"
)

// Products with stock at or below this count show up on the dashboard.
const lowStockThreshold = 5

// CanteenStore is the persistence surface the canteen service needs.
// *repositories.CanteenRepository satisfies it.
type CanteenStore interface {
	CreateProduct(ctx context.Context, p *models.CanteenProduct) error
	GetProductByID(ctx context.Context, id int64) (*models.CanteenProduct, error)
	GetAllProducts(ctx context.Context, category *string, availableOnly bool) ([]*models.CanteenProduct, error)
	UpdateProduct(ctx context.Context, p *models.CanteenProduct) error
	DeleteProduct(ctx context.Context, id int64) error
	CreateOrder(ctx context.Context, order *models.CanteenOrder) error
	GetOrderByID(ctx context.Context, id int64) (*models.CanteenOrder, error)
	GetAllOrders(ctx context.Context, status *models.OrderStatus, userID *int64, offset uint64, limit int) ([]*models.CanteenOrder, int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error
	CancelOrder(ctx context.Context, id int64) error
	Dashboard(ctx context.Context, since time.Time, lowStockThreshold int) (*repositories.CanteenDashboard, error)
}

// CanteenService handles the canteen menu and orders. Order creation is
// all-or-nothing: stock for every line is decremented in one transaction, and
// any failing line rolls back the whole order.
type CanteenService struct {
	store CanteenStore
}

// NewCanteenService creates a new canteen service
func NewCanteenService(store CanteenStore) *CanteenService {
	return &CanteenService{store: store}
}

// CreateProduct adds a product to the menu. Availability tracks stock.
func (s *CanteenService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*models.CanteenProduct, error) {
	p := &models.CanteenProduct{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Quantity:    req.Quantity,
		IsAvailable: req.Quantity > 0,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetProduct retrieves one product.
func (s *CanteenService) GetProduct(ctx context.Context, id int64) (*models.CanteenProduct, error) {
	return s.store.GetProductByID(ctx, id)
}

// ListProducts lists the menu, optionally filtered by category or limited to
// available items.
func (s *CanteenService) ListProducts(ctx context.Context, category *string, availableOnly bool) ([]*models.CanteenProduct, error) {
	return s.store.GetAllProducts(ctx, category, availableOnly)
}

// UpdateProduct applies a partial product update. Changing the quantity
// recomputes availability.
func (s *CanteenService) UpdateProduct(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*models.CanteenProduct, error) {
	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Category != nil {
		p.Category = req.Category
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
		p.IsAvailable = *req.Quantity > 0
	}

	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product from the menu.
func (s *CanteenService) DeleteProduct(ctx context.Context, id int64) error {
	return s.store.DeleteProduct(ctx, id)
}

// CreateOrder places an order for the given user. The total is always
// computed server-side from current prices; a client-sent total is only used
// as a sanity check and logged when it disagrees.
func (s *CanteenService) CreateOrder(ctx context.Context, userID int64, req *dto.CreateOrderRequest) (*models.CanteenOrder, error) {
	order := &models.CanteenOrder{
		UserID:        userID,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, &models.CanteenOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	if req.TotalAmount != nil && math.Abs(*req.TotalAmount-order.TotalAmount) > 0.009 {
		logger.Warn().
			Int64("orderId", order.ID).
			Float64("clientTotal", *req.TotalAmount).
			Float64("serverTotal", order.TotalAmount).
			Msg("Client order total differs from computed total")
	}

	return order, nil
}

// GetOrder retrieves an order. Students may only see their own orders.
func (s *CanteenService) GetOrder(ctx context.Context, actor *models.User, id int64) (*models.CanteenOrder, error) {
	order, err := s.store.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.RoleType == models.RoleStudent && order.UserID != actor.ID {
		return nil, apperrors.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders lists orders. Students are always scoped to their own orders.
func (s *CanteenService) ListOrders(ctx context.Context, actor *models.User, status *models.OrderStatus, offset uint64, limit int) ([]*models.CanteenOrder, int64, error) {
	var userID *int64
	if actor.RoleType == models.RoleStudent {
		userID = &actor.ID
	}
	return s.store.GetAllOrders(ctx, status, userID, offset, limit)
}

// UpdateOrderStatus transitions an order. Status casing is normalized; moving
// to cancelled restores the stock of every line item exactly once.
func (s *CanteenService) UpdateOrderStatus(ctx context.Context, id int64, rawStatus string) (*models.CanteenOrder, error) {
	status, ok := models.NormalizeOrderStatus(rawStatus)
	if !ok {
		return nil, apperrors.ErrInvalidOrderStatus
	}

	if status == models.OrderCancelled {
		if err := s.store.CancelOrder(ctx, id); err != nil {
			return nil, err
		}
	} else {
		if err := s.store.UpdateOrderStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}

	return s.store.GetOrderByID(ctx, id)
}

// CancelOrder cancels an order, restoring stock. Students may only cancel
// their own orders.
func (s *CanteenService) CancelOrder(ctx context.Context, actor *models.User, id int64) (*models.CanteenOrder, error) {
	if actor.RoleType == models.RoleStudent {
		order, err := s.store.GetOrderByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.UserID != actor.ID {
			return nil, apperrors.ErrOrderNotFound
		}
	}

	if err := s.store.CancelOrder(ctx, id); err != nil {
		return nil, err
	}
	return s.store.GetOrderByID(ctx, id)
}

// UpdatePaymentStatus transitions an order's payment state. Casing is
// normalized.
func (s *CanteenService) UpdatePaymentStatus(ctx context.Context, id int64, rawStatus string) (*models.CanteenOrder, error) {
	status, ok := models.NormalizePaymentStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewBadRequestError("unknown payment status: " + rawStatus)
	}

	if err := s.store.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.store.GetOrderByID(ctx, id)
}

// Dashboard aggregates today's canteen activity.
func (s *CanteenService) Dashboard(ctx context.Context) (*dto.CanteenDashboardResponse, error) {
	d, err := s.store.Dashboard(ctx, helpers.StartOfToday(), lowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &dto.CanteenDashboardResponse{
		ProductCount:    int(d.ProductCount),
		LowStockCount:   len(d.LowStockProducts),
		TodayOrderCount: int(d.TotalOrdersToday),
		TodayRevenue:    d.RevenueToday,
		PendingOrders:   int(d.PendingOrders),
	}, nil
}
