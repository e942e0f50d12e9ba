package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is the persisted row. The product fields are a snapshot taken at
// add time and are not kept in sync with the catalog service.
type CartItem struct {
	ID           int64           `json:"id"`
	CartID       int64           `json:"cart_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ImageLink    string          `json:"image_link,omitempty"`
	Quantity     int             `json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type AddItemRequest struct {
	Username     string          `json:"username" validate:"required,max=255"`
	ProductID    int64           `json:"product_id" validate:"required,gt=0"`
	ProductName  string          `json:"product_name" validate:"required,max=255"`
	ProductPrice decimal.Decimal `json:"product_price" validate:"gt=0"`
	ImageLink    string          `json:"image_link,omitempty" validate:"omitempty,max=1024"`
	Quantity     int             `json:"quantity" validate:"required,gt=0"`
}

// Quantity is a pointer so that an explicit 0 survives decoding; zero and
// negative values remove the item rather than failing validation.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CreateCartRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Username string `json:"username" validate:"required,max=255"`
}

// CartItemRead is the response shape; TotalAmount is derived at read time and
// never persisted.
type CartItemRead struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	ImageLink    string          `json:"image_link,omitempty"`
	Quantity     int             `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

type CartRead struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Username    string          `json:"username"`
	Items       []CartItemRead  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
