// Package orders persists customer orders and serves the status lookups the
// assistant answers from.
package orders

import (
	"context"
	"database/sql"
	"errors"

	commonerrors "kirana-assistant/internal/common/errors"
	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/models"
)

// ErrOrderNotFound distinguishes "no such order" from a lookup failure. The
// two produce different replies and must never collapse into one error.
var ErrOrderNotFound = errors.New("ORDER_NOT_FOUND")

type Service struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"service": "orders"}),
	}
}

// Create inserts an order in status pending with its line items. The total is
// computed from the cart items' product prices; items without a loaded
// product contribute nothing.
func (s *Service) Create(ctx context.Context, userID string, items []models.CartItem) (*models.Order, error) {
	var total float64
	for _, item := range items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, commonerrors.NewOrderCreateFailedError(err)
	}
	defer tx.Rollback()

	order := &models.Order{
		UserID:      userID,
		TotalAmount: total,
		Status:      models.OrderStatusPending,
	}
	err = tx.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, total_amount, status) VALUES ($1, $2, $3) RETURNING id, created_at",
		userID, total, string(models.OrderStatusPending)).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, commonerrors.NewOrderCreateFailedError(err)
	}

	for _, item := range items {
		var price float64
		if item.Product != nil {
			price = item.Product.Price
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)",
			order.ID, item.ProductID, item.Quantity, price)
		if err != nil {
			return nil, commonerrors.NewOrderCreateFailedError(err)
		}
		order.Items = append(order.Items, models.OrderItem{
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, commonerrors.NewOrderCreateFailedError(err)
	}

	s.logger.Info("order created", map[string]interface{}{
		"orderId": order.ID,
		"userId":  userID,
		"total":   total,
	})
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, total_amount, status, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, commonerrors.NewOrderLookupFailedError(err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, commonerrors.NewOrderLookupFailedError(err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewOrderLookupFailedError(err)
	}
	return orders, nil
}

// GetByID loads one order with its line items. Returns ErrOrderNotFound when
// the id does not resolve.
func (s *Service) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id = $1",
		orderID).Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, commonerrors.NewOrderLookupFailedError(err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1",
		orderID)
	if err != nil {
		return nil, commonerrors.NewOrderLookupFailedError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, commonerrors.NewOrderLookupFailedError(err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewOrderLookupFailedError(err)
	}
	return &o, nil
}

// UpdateStatus moves an order to a new status.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", string(status), orderID)
	if err != nil {
		return commonerrors.NewOrderLookupFailedError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return commonerrors.NewOrderLookupFailedError(err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
