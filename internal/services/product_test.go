package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/mhartig/microshop/internal/errors"
	"github.com/mhartig/microshop/internal/models"
	"github.com/mhartig/microshop/internal/repositories/mocks"
	service "github.com/mhartig/microshop/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)

	return &d
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		req := &models.CreateProductRequest{
			Name:        "Coffee Machine",
			Description: "Fully automatic",
			Price:       decimal.RequireFromString("199.99"),
			Count:       10,
		}

		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).
			Run(func(args mock.Arguments) {
				product := args.Get(1).(*models.Product)
				product.ID = 1
			}).
			Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1), product.ID)
		assert.Equal(t, "Coffee Machine", product.Name)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("199.99")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Strips Markup From Text Fields", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		req := &models.CreateProductRequest{
			Name:        "Widget<script>alert(1)</script>",
			Description: "<b>bold</b> claim",
			Price:       decimal.RequireFromString("5.00"),
			Count:       1,
		}

		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Widget", product.Name)
		assert.Equal(t, "bold claim", product.Description)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		req := &models.CreateProductRequest{
			Name:  "Broken",
			Price: decimal.RequireFromString("-1.00"),
		}

		// Act
		product, err := productService.CreateProduct(ctx, req)

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)
		dbError := errors.New("database connection failed")

		mockRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(dbError).Once()

		// Act
		product, err := productService.CreateProduct(ctx, &models.CreateProductRequest{Name: "X", Price: decimal.RequireFromString("1.00")})

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
		assert.ErrorIs(t, err, dbError)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		expected := &models.Product{ID: 7, Name: "Found", Price: decimal.RequireFromString("50.00")}
		mockRepo.On("GetProductByID", ctx, int64(7)).Return(expected, nil).Once()

		// Act
		product, err := productService.GetProductByID(ctx, 7)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		mockRepo.On("GetProductByID", ctx, int64(404)).Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := productService.GetProductByID(ctx, 404)

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Partial Update Leaves Other Fields Untouched", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		stored := &models.Product{
			ID:          3,
			Name:        "Coffee Machine",
			Description: "Fully automatic",
			Price:       decimal.RequireFromString("199.99"),
			Details:     "1450W",
			Count:       10,
			ImageLink:   "img.png",
		}

		mockRepo.On("GetProductByID", ctx, int64(3)).Return(stored, nil).Once()
		mockRepo.On("UpdateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		// Act: only count present in the payload
		product, err := productService.UpdateProduct(ctx, 3, &models.UpdateProductRequest{Count: intPtr(5)})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 5, product.Count)
		assert.Equal(t, "Coffee Machine", product.Name)
		assert.Equal(t, "Fully automatic", product.Description)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("199.99")))
		assert.Equal(t, "1450W", product.Details)
		assert.Equal(t, "img.png", product.ImageLink)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Applies All Present Fields", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		stored := &models.Product{ID: 3, Name: "Old", Price: decimal.RequireFromString("1.00")}

		mockRepo.On("GetProductByID", ctx, int64(3)).Return(stored, nil).Once()
		mockRepo.On("UpdateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, 3, &models.UpdateProductRequest{
			Name:  stringPtr("New"),
			Price: decimalPtr("2.50"),
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "New", product.Name)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("2.50")))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Negative Price", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		stored := &models.Product{ID: 3, Name: "Old", Price: decimal.RequireFromString("1.00")}
		mockRepo.On("GetProductByID", ctx, int64(3)).Return(stored, nil).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, 3, &models.UpdateProductRequest{Price: decimalPtr("-2.50")})

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		mockRepo.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		mockRepo.On("GetProductByID", ctx, int64(404)).Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := productService.UpdateProduct(ctx, 404, &models.UpdateProductRequest{Count: intPtr(5)})

		// Assert
		assert.Nil(t, product)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Clamps Page Parameters", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		mockRepo.On("ListProducts", ctx, 0, 100).Return([]*models.Product{}, nil).Once()

		// Act: negative skip and oversized limit are normalized
		products, err := productService.ListProducts(ctx, -5, 5000)

		// Assert
		require.NoError(t, err)
		assert.Empty(t, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		expected := []*models.Product{{ID: 1, Name: "First"}}
		mockRepo.On("ListProducts", ctx, 10, 20).Return(expected, nil).Once()

		// Act
		products, err := productService.ListProducts(ctx, 10, 20)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, products)
		mockRepo.AssertExpectations(t)
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		mockRepo.On("DeleteProduct", ctx, int64(5)).Return(nil).Once()

		// Act
		err := productService.DeleteProduct(ctx, 5)

		// Assert
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		productService := service.NewProductService(mockRepo)

		mockRepo.On("DeleteProduct", ctx, int64(404)).Return(sql.ErrNoRows).Once()

		// Act
		err := productService.DeleteProduct(ctx, 404)

		// Assert
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
		mockRepo.AssertExpectations(t)
	})
}
