// Package mocks provides testify mocks of the service interfaces.
package mocks

import (
	"context"

	"github.com/mhartig/microshop/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductService struct {
	mock.Mock
}

func (m *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, id, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductService) ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, skip, limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type CartService struct {
	mock.Mock
}

func (m *CartService) CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.CartRead, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartRead), args.Error(1)
}

func (m *CartService) GetCart(ctx context.Context, userID int64) (*models.CartRead, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartRead), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartItemRead, error) {
	args := m.Called(ctx, userID, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItemRead), args.Error(1)
}

func (m *CartService) UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int) (*models.CartItemRead, bool, error) {
	args := m.Called(ctx, userID, productID, quantity)

	var item *models.CartItemRead
	if args.Get(0) != nil {
		item = args.Get(0).(*models.CartItemRead)
	}

	return item, args.Bool(1), args.Error(2)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, productID int64) error {
	args := m.Called(ctx, userID, productID)

	return args.Error(0)
}

func (m *CartService) ClearCart(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}
