package sales

import (
	"time"

	"github.com/ledgerline/ledgerline/internal/shared"
)

type SaleLineRequest struct {
	ProductID     int64   `json:"product_id" validate:"required,gt=0"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=200"`
	Quantity      float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64 `json:"unit_price" validate:"gte=0"`
	ThirteenDozen bool    `json:"thirteen_dozen"`
	LineOrder     int     `json:"line_order" validate:"gte=0"`
}

type CreateSaleRequest struct {
	CustomerID     *int64            `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	SaleDate       time.Time         `json:"sale_date" validate:"required"`
	PartialPayment float64           `json:"partial_payment" validate:"gte=0"`
	Notes          *string           `json:"notes,omitempty"`
	Lines          []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type UpdateSaleRequest struct {
	SaleDate       *time.Time         `json:"sale_date,omitempty"`
	PartialPayment *float64           `json:"partial_payment,omitempty" validate:"omitempty,gte=0"`
	Notes          *string            `json:"notes,omitempty"`
	Lines          *[]SaleLineRequest `json:"lines,omitempty" validate:"omitempty,min=1,dive"`
}

type ListSalesRequest struct {
	shared.ListQuery
	CustomerID *int64
	Owes       *bool
	DateFrom   *time.Time
	DateTo     *time.Time
}
