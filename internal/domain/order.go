package domain

import "time"

type Order struct {
	ID            string      `json:"id"`
	Status        string      `json:"status"` // pending, processing, shipped, delivered, cancelled
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // price at time of purchase
	Quantity  int     `json:"quantity"`
}

// OrderRequest is the POST /api/orders body.
type OrderRequest struct {
	AddressID     string             `json:"address_id"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderRequestItem `json:"items"`
}

type OrderRequestItem struct {
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}
