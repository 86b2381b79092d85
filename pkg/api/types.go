package api

import "time"

// Wire types mirroring the server's JSON representations. Each implements
// liststore.Entity so typed resources plug straight into list stores.

type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Customer) EntityID() int64 { return c.ID }

type Product struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  *string   `json:"category,omitempty"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `json:"unit_price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Product) EntityID() int64 { return p.ID }

type Order struct {
	ID           int64       `json:"id"`
	CustomerID   int64       `json:"customer_id"`
	Status       string      `json:"status"`
	OrderDate    time.Time   `json:"order_date"`
	DeliveryDate *time.Time  `json:"delivery_date,omitempty"`
	TotalPrice   float64     `json:"total_price"`
	Notes        *string     `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Lines        []OrderLine `json:"lines,omitempty"`
}

func (o Order) EntityID() int64 { return o.ID }

type OrderLine struct {
	ID            int64   `json:"id"`
	OrderID       int64   `json:"order_id"`
	ProductID     int64   `json:"product_id"`
	Description   *string `json:"description,omitempty"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	ThirteenDozen bool    `json:"thirteen_dozen"`
	LineTotal     float64 `json:"line_total"`
	LineOrder     int     `json:"line_order"`
}

type Sale struct {
	ID             int64      `json:"id"`
	CustomerID     *int64     `json:"customer_id,omitempty"`
	SaleDate       time.Time  `json:"sale_date"`
	TotalPrice     float64    `json:"total_price"`
	PartialPayment float64    `json:"partial_payment"`
	Owes           bool       `json:"owes"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Lines          []SaleLine `json:"lines,omitempty"`
}

func (s Sale) EntityID() int64 { return s.ID }

type SaleLine struct {
	ID            int64   `json:"id"`
	SaleID        int64   `json:"sale_id"`
	ProductID     int64   `json:"product_id"`
	Description   *string `json:"description,omitempty"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	ThirteenDozen bool    `json:"thirteen_dozen"`
	LineTotal     float64 `json:"line_total"`
	LineOrder     int     `json:"line_order"`
}

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
