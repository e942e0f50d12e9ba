package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/mhartig/microshop/internal/errors"
	"github.com/mhartig/microshop/internal/models"
	repository "github.com/mhartig/microshop/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 100
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	repo      repository.ProductRepository
	sanitizer *bluemonday.Policy
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	if req.Price.IsNegative() {
		return nil, appErrors.ValidationError("Price must not be negative")
	}

	product := &models.Product{
		Name:        s.sanitizer.Sanitize(req.Name),
		Description: s.sanitizer.Sanitize(req.Description),
		Price:       req.Price,
		Details:     s.sanitizer.Sanitize(req.Details),
		Count:       req.Count,
		ImageLink:   req.ImageLink,
	}

	err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	return product, nil
}

// UpdateProduct applies only the fields present in the PATCH payload; absent
// fields keep their stored values.
func (s *productService) UpdateProduct(ctx context.Context, id int64, req *models.UpdateProductRequest) (*models.Product, error) {

	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = s.sanitizer.Sanitize(*req.Name)
	}
	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, appErrors.ValidationError("Price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Details != nil {
		product.Details = s.sanitizer.Sanitize(*req.Details)
	}
	if req.Count != nil {
		if *req.Count < 0 {
			return nil, appErrors.ValidationError("Count must not be negative")
		}
		product.Count = *req.Count
	}
	if req.ImageLink != nil {
		product.ImageLink = *req.ImageLink
	}

	err = s.repo.UpdateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error) {

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	products, err := s.repo.ListProducts(ctx, skip, limit)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	return products, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {

	err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	return nil
}
