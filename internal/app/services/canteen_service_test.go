package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
)

// fakeCanteenStore mirrors the repository's transactional order semantics in
// memory: order creation decrements stock for every line or changes nothing,
// and cancellation restores stock exactly once.
type fakeCanteenStore struct {
	products map[int64]*models.CanteenProduct
	orders   map[int64]*models.CanteenOrder
	nextID   int64
}

func newFakeCanteenStore() *fakeCanteenStore {
	return &fakeCanteenStore{
		products: make(map[int64]*models.CanteenProduct),
		orders:   make(map[int64]*models.CanteenOrder),
		nextID:   1,
	}
}

func (f *fakeCanteenStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeCanteenStore) CreateProduct(_ context.Context, p *models.CanteenProduct) error {
	for _, existing := range f.products {
		if existing.Name == p.Name {
			return apperrors.ErrDuplicateKey
		}
	}
	p.ID = f.id()
	f.products[p.ID] = p
	return nil
}

func (f *fakeCanteenStore) GetProductByID(_ context.Context, id int64) (*models.CanteenProduct, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, apperrors.ErrProductNotFound
}

func (f *fakeCanteenStore) GetAllProducts(_ context.Context, category *string, availableOnly bool) ([]*models.CanteenProduct, error) {
	var out []*models.CanteenProduct
	for _, p := range f.products {
		if category != nil && (p.Category == nil || *p.Category != *category) {
			continue
		}
		if availableOnly && !p.IsAvailable {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCanteenStore) UpdateProduct(_ context.Context, p *models.CanteenProduct) error {
	if _, ok := f.products[p.ID]; !ok {
		return apperrors.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeCanteenStore) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return apperrors.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCanteenStore) CreateOrder(_ context.Context, order *models.CanteenOrder) error {
	// Validate every line before touching any stock.
	for _, item := range order.Items {
		p, ok := f.products[item.ProductID]
		if !ok {
			return apperrors.ErrProductNotFound
		}
		if !p.IsAvailable || p.Quantity < item.Quantity {
			return apperrors.ErrInsufficientStock
		}
	}

	order.ID = f.id()
	order.TotalAmount = 0
	for _, item := range order.Items {
		p := f.products[item.ProductID]
		p.Quantity -= item.Quantity
		p.IsAvailable = p.Quantity > 0
		item.ID = f.id()
		item.OrderID = order.ID
		item.Name = p.Name
		item.Price = p.Price
		order.TotalAmount += p.Price * float64(item.Quantity)
	}
	order.CreatedAt = time.Now()
	f.orders[order.ID] = order
	return nil
}

func (f *fakeCanteenStore) GetOrderByID(_ context.Context, id int64) (*models.CanteenOrder, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, apperrors.ErrOrderNotFound
}

func (f *fakeCanteenStore) GetAllOrders(_ context.Context, status *models.OrderStatus, userID *int64, _ uint64, _ int) ([]*models.CanteenOrder, int64, error) {
	var out []*models.CanteenOrder
	for _, o := range f.orders {
		if status != nil && o.Status != *status {
			continue
		}
		if userID != nil && o.UserID != *userID {
			continue
		}
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCanteenStore) UpdateOrderStatus(_ context.Context, id int64, status models.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return apperrors.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (f *fakeCanteenStore) UpdatePaymentStatus(_ context.Context, id int64, status models.PaymentStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return apperrors.ErrOrderNotFound
	}
	o.PaymentStatus = status
	return nil
}

func (f *fakeCanteenStore) CancelOrder(_ context.Context, id int64) error {
	o, ok := f.orders[id]
	if !ok {
		return apperrors.ErrOrderNotFound
	}
	// Stock is restored only on the first transition into cancelled.
	// Completed and already-cancelled orders stay as they are.
	if o.Status == models.OrderCompleted || o.Status == models.OrderCancelled {
		return apperrors.ErrInvalidOrderStatus
	}
	for _, item := range o.Items {
		if p, ok := f.products[item.ProductID]; ok {
			p.Quantity += item.Quantity
			p.IsAvailable = p.Quantity > 0
		}
	}
	o.Status = models.OrderCancelled
	return nil
}

func (f *fakeCanteenStore) Dashboard(_ context.Context, since time.Time, lowStock int) (*repositories.CanteenDashboard, error) {
	d := &repositories.CanteenDashboard{ProductCount: int64(len(f.products))}
	for _, p := range f.products {
		if p.Quantity <= lowStock {
			d.LowStockProducts = append(d.LowStockProducts, p)
		}
	}
	for _, o := range f.orders {
		if o.CreatedAt.Before(since) || o.Status == models.OrderCancelled {
			continue
		}
		d.TotalOrdersToday++
		d.RevenueToday += o.TotalAmount
		if o.Status == models.OrderPending {
			d.PendingOrders++
		}
	}
	return d, nil
}

func newCanteenFixture(t *testing.T) (*CanteenService, *fakeCanteenStore, *models.CanteenProduct) {
	t.Helper()
	store := newFakeCanteenStore()
	svc := NewCanteenService(store)

	tea, err := svc.CreateProduct(context.Background(), &dto.CreateProductRequest{
		Name: "Tea", Price: 10, Quantity: 10,
	})
	require.NoError(t, err)
	return svc, store, tea
}

func studentActor(id int64) *models.User {
	return &models.User{ID: id, RoleType: models.RoleStudent}
}

func TestCreateOrderDecrementsStockAndComputesTotal(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, float64(30), order.TotalAmount)
	assert.Equal(t, "Tea", order.Items[0].Name)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity)
	assert.True(t, p.IsAvailable)
}

func TestCreateOrderInsufficientStockLeavesStockUntouched(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	_, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 11}},
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestCreateOrderExhaustingStockFlipsAvailability(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	_, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 10}},
	})
	require.NoError(t, err)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.False(t, p.IsAvailable)

	// A second order against the drained product fails.
	_, err = svc.CreateOrder(context.Background(), 2, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
}

func TestCancelOrderRestoresStockExactlyOnce(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 4}},
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(context.Background(), studentActor(1), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)

	// Cancelling again must not restore stock twice.
	_, err = svc.CancelOrder(context.Background(), studentActor(1), order.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderStatus)

	p, err = svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestCancelReadyOrderRestoresStock(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, "ready")
	require.NoError(t, err)

	// An order that hasn't been handed over yet can still be cancelled.
	cancelled, err := svc.CancelOrder(context.Background(), studentActor(1), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestCancelCompletedOrderRejected(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, "completed")
	require.NoError(t, err)

	_, err = svc.CancelOrder(context.Background(), studentActor(1), order.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderStatus)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Quantity)
}

func TestCancelOrderOwnershipCheck(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.CancelOrder(context.Background(), studentActor(2), order.ID)
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
}

func TestUpdateOrderStatusNormalizesCasing(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Preparing")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPreparing, updated.Status)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, "vanished")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOrderStatus)
}

func TestUpdateOrderStatusCancelledRoutesThroughCancel(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	order, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, updated.Status)

	p, err := svc.GetProduct(context.Background(), tea.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestListOrdersScopesStudentsToOwnOrders(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	_, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = svc.CreateOrder(context.Background(), 2, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	mine, total, err := svc.ListOrders(context.Background(), studentActor(1), nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].UserID)

	all, total, err := svc.ListOrders(context.Background(), &models.User{ID: 9, RoleType: models.RoleAdmin}, nil, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestDashboardCountsTodayActivity(t *testing.T) {
	svc, _, tea := newCanteenFixture(t)

	_, err := svc.CreateOrder(context.Background(), 1, &dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: tea.ID, Quantity: 6}},
	})
	require.NoError(t, err)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dash.ProductCount)
	assert.Equal(t, 1, dash.TodayOrderCount)
	assert.Equal(t, 1, dash.PendingOrders)
	assert.Equal(t, float64(60), dash.TodayRevenue)
	assert.Equal(t, 1, dash.LowStockCount) // 4 left, at or below the threshold
}
