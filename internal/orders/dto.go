package orders

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/shared"
)

type OrderLineRequest struct {
	ProductID     int64   `json:"product_id" validate:"required,gt=0"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=200"`
	Quantity      float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	ThirteenDozen bool    `json:"thirteen_dozen"`
	LineOrder     int     `json:"line_order" validate:"gte=0"`
}

type CreateOrderRequest struct {
	CustomerID   int64              `json:"customer_id" validate:"required,gt=0"`
	OrderDate    time.Time          `json:"order_date" validate:"required"`
	DeliveryDate *time.Time         `json:"delivery_date,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
	Lines        []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	OrderDate    *time.Time          `json:"order_date,omitempty"`
	DeliveryDate *time.Time          `json:"delivery_date,omitempty"`
	Status       *OrderStatus        `json:"status,omitempty"`
	Notes        *string             `json:"notes,omitempty"`
	Lines        *[]OrderLineRequest `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
}

type ListOrdersRequest struct {
	shared.ListQuery
	CustomerID *int64
	Status     *OrderStatus
	DateFrom   *time.Time
	DateTo     *time.Time
}
