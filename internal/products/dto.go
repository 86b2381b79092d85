package products

import "github.com/ledgerline/ledgerline/internal/shared"

type CreateProductRequest struct {
	Code      string  `json:"code" validate:"required,max=50"`
	Name      string  `json:"name" validate:"required,max=200"`
	Category  *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit      string  `json:"unit" validate:"required,max=20"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Category  *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	Unit      *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	UnitPrice *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	IsActive  *bool    `json:"is_active,omitempty"`
}

type ListProductsRequest struct {
	shared.ListQuery
	Category *string
	MinPrice *float64
	MaxPrice *float64
	IsActive *bool
}
