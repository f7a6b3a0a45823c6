// internal/models/cart.go
package models

type CartItem struct {
	ID        string   `json:"id"`
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	UserID    string   `json:"userId"`
	Product   *Product `json:"product,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}
