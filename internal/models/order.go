// internal/models/order.go
package models

import "time"

// OrderStatus is one of the six fixed order states. Anything else is treated
// as unknown by the response formatter, never as an error.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID        string   `json:"id"`
	OrderID   string   `json:"orderId"`
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}
