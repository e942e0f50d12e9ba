// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/mhartig/microshop/internal/models"
	"github.com/stretchr/testify/mock"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, skip, limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) UpsertCart(ctx context.Context, userID int64, username string) (*models.Cart, error) {
	args := m.Called(ctx, userID, username)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *CartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *CartRepository) SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, productID, quantity)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *CartRepository) DeleteItem(ctx context.Context, cartID, productID int64) error {
	args := m.Called(ctx, cartID, productID)

	return args.Error(0)
}

func (m *CartRepository) ListItems(ctx context.Context, cartID int64) ([]*models.CartItem, error) {
	args := m.Called(ctx, cartID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.CartItem), args.Error(1)
}

func (m *CartRepository) DeleteItems(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}
