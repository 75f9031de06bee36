package dto

// CreateProductRequest is the payload for POST /canteen/products
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=200"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Category *string `json:"category"`
	Quantity int     `json:"quantity" binding:"gte=0"`
}

// UpdateProductRequest is the payload for PUT /canteen/products/:id
type UpdateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Category *string  `json:"category"`
	Quantity *int     `json:"quantity" binding:"omitempty,gte=0"`
}

// OrderItemRequest is one line of an order request.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the payload for POST /canteen/orders. TotalAmount is an
// optional client-side sanity figure; the server always recomputes the total.
type CreateOrderRequest struct {
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount *float64           `json:"totalAmount" binding:"omitempty,gt=0"`
}

// UpdateOrderStatusRequest is the payload for PUT /canteen/orders/:id/status.
// Status casing is normalized on write.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest is the payload for PUT /canteen/orders/:id/payment
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
}

// CanteenDashboardResponse aggregates canteen metrics for the admin dashboard.
type CanteenDashboardResponse struct {
	ProductCount    int     `json:"productCount"`
	LowStockCount   int     `json:"lowStockCount"` // Products with quantity below 5
	TodayOrderCount int     `json:"todayOrderCount"`
	TodayRevenue    float64 `json:"todayRevenue"`
	PendingOrders   int     `json:"pendingOrders"`
}
