package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Details     string          `json:"details,omitempty"`
	Count       int             `json:"count"`
	ImageLink   string          `json:"imageLink,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Details     string          `json:"details,omitempty"`
	Count       int             `json:"count" validate:"gte=0"`
	ImageLink   string          `json:"imageLink,omitempty" validate:"omitempty,max=1024"`
}

// UpdateProductRequest carries only the fields present in the PATCH payload;
// nil means "leave unchanged".
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0"`
	Details     *string          `json:"details,omitempty"`
	Count       *int             `json:"count,omitempty" validate:"omitempty,gte=0"`
	ImageLink   *string          `json:"imageLink,omitempty" validate:"omitempty,max=1024"`
}
