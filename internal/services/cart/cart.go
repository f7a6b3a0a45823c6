// Package cart persists the per-user shopping cart.
package cart

import (
	"context"
	"database/sql"
	"errors"

	commonerrors "kirana-assistant/internal/common/errors"
	"kirana-assistant/internal/common/logger"
	"kirana-assistant/internal/models"
)

type Service struct {
	db     *sql.DB
	logger logger.Logger
}

func New(db *sql.DB, log logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"service": "cart"}),
	}
}

// Items returns the user's cart with product details joined in.
func (s *Service) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.user_id, c.product_id, c.quantity,
		       p.id, p.name, p.price, p.category, p.description, p.image_url, p.stock
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1`, userID)
	if err != nil {
		return nil, commonerrors.NewCartUpdateFailedError(err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		var product models.Product
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&product.ID, &product.Name, &product.Price, &product.Category,
			&product.Description, &product.ImageURL, &product.Stock,
		)
		if err != nil {
			return nil, commonerrors.NewCartUpdateFailedError(err)
		}
		item.Product = &product
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewCartUpdateFailedError(err)
	}
	return items, nil
}

// Add puts a product in the cart. An existing row for the same product gets
// its quantity incremented instead of a second row.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	var itemID string
	var existing int
	err := s.db.QueryRowContext(ctx,
		"SELECT id, quantity FROM cart_items WHERE user_id = $1 AND product_id = $2",
		userID, productID).Scan(&itemID, &existing)
	switch {
	case err == nil:
		_, err = s.db.ExecContext(ctx,
			"UPDATE cart_items SET quantity = $1 WHERE id = $2", existing+quantity, itemID)
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx,
			"INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)",
			userID, productID, quantity)
	}
	if err != nil {
		return commonerrors.NewCartUpdateFailedError(err)
	}
	return nil
}

// UpdateQuantity sets a cart row's quantity. Zero or negative removes the row.
func (s *Service) UpdateQuantity(ctx context.Context, cartItemID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, cartItemID)
	}

	_, err := s.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE id = $2", quantity, cartItemID)
	if err != nil {
		return commonerrors.NewCartUpdateFailedError(err)
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, cartItemID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1", cartItemID)
	if err != nil {
		return commonerrors.NewCartUpdateFailedError(err)
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		return commonerrors.NewCartUpdateFailedError(err)
	}
	return nil
}

// Total sums price times quantity over the given items. Items without a
// loaded product count as zero.
func Total(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}
