package orders

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusFulfilled OrderStatus = "FULFILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           int64       `json:"id" db:"id"`
	CustomerID   int64       `json:"customer_id" db:"customer_id"`
	Status       OrderStatus `json:"status" db:"status"`
	OrderDate    time.Time   `json:"order_date" db:"order_date"`
	DeliveryDate *time.Time  `json:"delivery_date,omitempty" db:"delivery_date"`
	TotalPrice   float64     `json:"total_price" db:"total_price"`
	Notes        *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
	Lines        []OrderLine `json:"lines,omitempty" db:"-"`
}

type OrderLine struct {
	ID            int64   `json:"id" db:"id"`
	OrderID       int64   `json:"order_id" db:"order_id"`
	ProductID     int64   `json:"product_id" db:"product_id"`
	Description   *string `json:"description,omitempty" db:"description"`
	Quantity      float64 `json:"quantity" db:"quantity"`
	UnitPrice     float64 `json:"unit_price" db:"unit_price"`
	ThirteenDozen bool    `json:"thirteen_dozen" db:"thirteen_dozen"`
	LineTotal     float64 `json:"line_total" db:"line_total"`
	LineOrder     int     `json:"line_order" db:"line_order"`
}
