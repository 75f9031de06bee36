package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/db"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/dberrors"
)

const productColumns = `id, name, price, category, quantity, is_available, created_at, updated_at`

// CanteenDashboard aggregates today's order activity for the canteen staff view.
type CanteenDashboard struct {
	ProductCount     int64
	TotalOrdersToday int64
	PendingOrders    int64
	PreparingOrders  int64
	ReadyOrders      int64
	RevenueToday     float64
	LowStockProducts []*models.CanteenProduct
}

// CanteenRepository handles database operations for canteen products and orders
type CanteenRepository struct {
	db *pgxpool.Pool
}

// NewCanteenRepository creates a new canteen repository
func NewCanteenRepository(db *pgxpool.Pool) *CanteenRepository {
	return &CanteenRepository{db: db}
}

func scanProduct(row pgx.Row) (*models.CanteenProduct, error) {
	var p models.CanteenProduct
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Category,
		&p.Quantity, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct inserts a new product. Product names are unique.
func (r *CanteenRepository) CreateProduct(ctx context.Context, p *models.CanteenProduct) error {
	query := `
		INSERT INTO canteen_products (name, price, category, quantity, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Name, p.Price, p.Category, p.Quantity, p.IsAvailable,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		return fmt.Errorf("error creating canteen product: %w", err)
	}

	return nil
}

// GetProductByID retrieves a product by ID. Returns ErrProductNotFound when missing.
func (r *CanteenRepository) GetProductByID(ctx context.Context, id int64) (*models.CanteenProduct, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM canteen_products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("error retrieving canteen product: %w", err)
	}
	return p, nil
}

// GetAllProducts retrieves products, optionally filtered by category and availability.
func (r *CanteenRepository) GetAllProducts(ctx context.Context, category *string, availableOnly bool) ([]*models.CanteenProduct, error) {
	query := `
		SELECT ` + productColumns + `
		FROM canteen_products
		WHERE ($1::text IS NULL OR category = $1)
		  AND (NOT $2 OR is_available)
		ORDER BY category NULLS LAST, name
	`

	rows, err := r.db.Query(ctx, query, category, availableOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.CanteenProduct
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// UpdateProduct applies the given product state to the stored row
func (r *CanteenRepository) UpdateProduct(ctx context.Context, p *models.CanteenProduct) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE canteen_products
		SET name = $1, price = $2, category = $3, quantity = $4,
		    is_available = $5, updated_at = NOW()
		WHERE id = $6`,
		p.Name, p.Price, p.Category, p.Quantity, p.IsAvailable, p.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		return fmt.Errorf("error updating canteen product: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}

	return nil
}

// DeleteProduct removes a product from the menu
func (r *CanteenRepository) DeleteProduct(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM canteen_products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting canteen product: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}

	return nil
}

// CreateOrder creates an order and decrements stock for every line inside a
// single transaction. Any unavailable product or insufficient stock rolls the
// whole order back. Item name and unit price are snapshotted at order time.
func (r *CanteenRepository) CreateOrder(ctx context.Context, order *models.CanteenOrder) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		order.TotalAmount = 0
		for _, item := range order.Items {
			var name string
			var price float64
			var available bool
			err := tx.QueryRow(ctx, `
				SELECT name, price, is_available
				FROM canteen_products
				WHERE id = $1
				FOR UPDATE`,
				item.ProductID).Scan(&name, &price, &available)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return apperrors.ErrProductNotFound
				}
				return fmt.Errorf("error locking product %d: %w", item.ProductID, err)
			}
			if !available {
				return apperrors.ErrProductUnavailable
			}

			cmdTag, err := tx.Exec(ctx, `
				UPDATE canteen_products
				SET quantity = quantity - $1,
				    is_available = (quantity - $1) > 0,
				    updated_at = NOW()
				WHERE id = $2 AND quantity >= $1`,
				item.Quantity, item.ProductID)
			if err != nil {
				return fmt.Errorf("error decrementing stock for product %d: %w", item.ProductID, err)
			}
			if cmdTag.RowsAffected() == 0 {
				return apperrors.ErrInsufficientStock
			}

			item.Name = name
			item.Price = price
			order.TotalAmount += price * float64(item.Quantity)
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO canteen_orders (user_id, status, payment_status, total_amount)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at`,
			order.UserID, order.Status, order.PaymentStatus, order.TotalAmount,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating canteen order: %w", err)
		}

		for _, item := range order.Items {
			err := tx.QueryRow(ctx, `
				INSERT INTO canteen_order_items (order_id, product_id, name, price, quantity)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				order.ID, item.ProductID, item.Name, item.Price, item.Quantity,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("error creating order item: %w", err)
			}
			item.OrderID = order.ID
		}

		return nil
	})
}

// GetOrderByID retrieves an order with its line items.
func (r *CanteenRepository) GetOrderByID(ctx context.Context, id int64) (*models.CanteenOrder, error) {
	var order models.CanteenOrder
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, status, payment_status, total_amount, created_at, updated_at
		FROM canteen_orders
		WHERE id = $1`, id).Scan(
		&order.ID, &order.UserID, &order.Status, &order.PaymentStatus,
		&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("error retrieving canteen order: %w", err)
	}

	items, err := r.listOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *CanteenRepository) listOrderItems(ctx context.Context, orderID int64) ([]*models.CanteenOrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, name, price, quantity
		FROM canteen_order_items
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CanteenOrderItem
	for rows.Next() {
		var item models.CanteenOrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// GetAllOrders retrieves orders newest first, optionally filtered by status
// and ordering user, with the total count for pagination. Line items are attached.
func (r *CanteenRepository) GetAllOrders(ctx context.Context, status *models.OrderStatus, userID *int64, offset uint64, limit int) ([]*models.CanteenOrder, int64, error) {
	query := `
		SELECT id, user_id, status, payment_status, total_amount, created_at, updated_at
		FROM canteen_orders
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::bigint IS NULL OR user_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, status, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*models.CanteenOrder
	for rows.Next() {
		var order models.CanteenOrder
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Status, &order.PaymentStatus,
			&order.TotalAmount, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, order := range orders {
		items, err := r.listOrderItems(ctx, order.ID)
		if err != nil {
			return nil, 0, err
		}
		order.Items = items
	}

	var total int64
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM canteen_orders
		WHERE ($1::text IS NULL OR status = $1)
		  AND ($2::bigint IS NULL OR user_id = $2)`,
		status, userID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderStatus transitions an order's status.
func (r *CanteenRepository) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE canteen_orders SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating order status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrderNotFound
	}

	return nil
}

// UpdatePaymentStatus transitions an order's payment status.
func (r *CanteenRepository) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE canteen_orders SET payment_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOrderNotFound
	}

	return nil
}

// CancelOrder sets the order to cancelled and restores the stock of every
// line item, in a single transaction. Any order not yet completed or
// cancelled can be cancelled; the status guard in the UPDATE makes the
// restore happen at most once, even for concurrent cancel requests.
func (r *CanteenRepository) CancelOrder(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE canteen_orders
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND status IN ($3, $4, $5)`,
			models.OrderCancelled, id, models.OrderPending, models.OrderPreparing, models.OrderReady)
		if err != nil {
			return fmt.Errorf("error cancelling order: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx,
				`SELECT EXISTS(SELECT 1 FROM canteen_orders WHERE id = $1)`, id).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return apperrors.ErrOrderNotFound
			}
			return apperrors.ErrInvalidOrderStatus
		}

		_, err = tx.Exec(ctx, `
			UPDATE canteen_products p
			SET quantity = p.quantity + i.quantity,
			    is_available = true,
			    updated_at = NOW()
			FROM canteen_order_items i
			WHERE i.order_id = $1 AND p.id = i.product_id`, id)
		if err != nil {
			return fmt.Errorf("error restoring stock: %w", err)
		}

		return nil
	})
}

// Dashboard aggregates orders since the given time and flags products low on stock.
func (r *CanteenRepository) Dashboard(ctx context.Context, since time.Time, lowStockThreshold int) (*CanteenDashboard, error) {
	var d CanteenDashboard
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'preparing'),
		       COUNT(*) FILTER (WHERE status = 'ready'),
		       COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0)
		FROM canteen_orders
		WHERE created_at >= $1`, since).Scan(
		&d.TotalOrdersToday, &d.PendingOrders, &d.PreparingOrders, &d.ReadyOrders, &d.RevenueToday)
	if err != nil {
		return nil, fmt.Errorf("error aggregating canteen dashboard: %w", err)
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM canteen_products`).Scan(&d.ProductCount); err != nil {
		return nil, fmt.Errorf("error counting canteen products: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM canteen_products
		WHERE quantity <= $1
		ORDER BY quantity, name`, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		d.LowStockProducts = append(d.LowStockProducts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}
