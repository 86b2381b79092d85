package sales

import "time"

type Sale struct {
	ID             int64      `json:"id" db:"id"`
	CustomerID     *int64     `json:"customer_id,omitempty" db:"customer_id"`
	SaleDate       time.Time  `json:"sale_date" db:"sale_date"`
	TotalPrice     float64    `json:"total_price" db:"total_price"`
	PartialPayment float64    `json:"partial_payment" db:"partial_payment"`
	Owes           bool       `json:"owes" db:"owes"`
	Notes          *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	Lines          []SaleLine `json:"lines,omitempty" db:"-"`
}

type SaleLine struct {
	ID            int64   `json:"id" db:"id"`
	SaleID        int64   `json:"sale_id" db:"sale_id"`
	ProductID     int64   `json:"product_id" db:"product_id"`
	Description   *string `json:"description,omitempty" db:"description"`
	Quantity      float64 `json:"quantity" db:"quantity"`
	UnitPrice     float64 `json:"unit_price" db:"unit_price"`
	ThirteenDozen bool    `json:"thirteen_dozen" db:"thirteen_dozen"`
	LineTotal     float64 `json:"line_total" db:"line_total"`
	LineOrder     int     `json:"line_order" db:"line_order"`
}
