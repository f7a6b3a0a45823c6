// internal/models/product.go
package models

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}
