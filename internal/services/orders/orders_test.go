package orders

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/models"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db, logger.NewTestLogger(t)), mock
}

func TestService_Create(t *testing.T) {
	svc, mock := newTestService(t)
	createdAt := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	items := []models.CartItem{
		{ProductID: "p1", Quantity: 2, Product: &models.Product{ID: "p1", Price: 80}},
		{ProductID: "p2", Quantity: 1, Product: &models.Product{ID: "p2", Price: 120}},
	}

	mock.ExpectBegin()
	// Total is 2*80 + 1*120.
	mock.ExpectQuery(`INSERT INTO orders \(user_id, total_amount, status\) VALUES \(\$1, \$2, \$3\) RETURNING id, created_at`).
		WithArgs("user-1", 280.0, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("order-1", createdAt))
	mock.ExpectExec(`INSERT INTO order_items \(order_id, product_id, quantity, price\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs("order-1", "p1", 2, 80.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items \(order_id, product_id, quantity, price\) VALUES \(\$1, \$2, \$3, \$4\)`).
		WithArgs("order-1", "p2", 1, 120.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.Create(context.Background(), "user-1", items)

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 280.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_MissingProductContributesNothing(t *testing.T) {
	svc, mock := newTestService(t)

	items := []models.CartItem{
		{ProductID: "p1", Quantity: 3},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("user-1", 0.0, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("order-2", time.Now()))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs("order-2", "p1", 3, 0.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.Create(context.Background(), "user-1", items)

	require.NoError(t, err)
	assert.Equal(t, 0.0, order.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetByID(t *testing.T) {
	svc, mock := newTestService(t)
	createdAt := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id = \$1`).
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "created_at"}).
			AddRow("order-1", "user-1", 450.9, "out_for_delivery", createdAt))
	mock.ExpectQuery(`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = \$1`).
		WithArgs("order-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "price"}).
			AddRow("item-1", "order-1", "p1", 2, 225.45))

	order, err := svc.GetByID(context.Background(), "order-1")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusOutForDelivery, order.Status)
	assert.Equal(t, 450.9, order.TotalAmount)
	assert.Equal(t, createdAt, order.CreatedAt)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "p1", order.Items[0].ProductID)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "created_at"}))

	_, err := svc.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_GetByID_LookupFailureIsNotNotFound(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id = \$1`).
		WithArgs("order-1").
		WillReturnError(assert.AnError)

	_, err := svc.GetByID(context.Background(), "order-1")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOrderNotFound)
}

func TestService_ListByUser(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, user_id, total_amount, status, created_at FROM orders WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_amount", "status", "created_at"}).
			AddRow("order-2", "user-1", 120.0, "pending", time.Now()).
			AddRow("order-1", "user-1", 450.0, "delivered", time.Now().Add(-time.Hour)))

	orders, err := svc.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-2", orders[0].ID)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1 WHERE id = \$2`).
		WithArgs("confirmed", "order-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.UpdateStatus(context.Background(), "order-1", models.OrderStatusConfirmed)

	assert.NoError(t, err)
}

func TestService_UpdateStatus_UnknownOrder(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`UPDATE orders SET status = \$1 WHERE id = \$2`).
		WithArgs("cancelled", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.UpdateStatus(context.Background(), "missing", models.OrderStatusCancelled)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}
