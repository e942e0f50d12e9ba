package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mhartig/microshop/internal/models"
	"github.com/mhartig/microshop/internal/utils"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO products (name, description, price, details, count, image_link)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.Details, product.Count, product.ImageLink).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, description, price, details, count, image_link, created_at, updated_at
		FROM products
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Details, &product.Count, &product.ImageLink, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, description = $2, price = $3, details = $4, count = $5, image_link = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	return r.DB.QueryRowContext(dbCtx, query, product.Name, product.Description, product.Price, product.Details, product.Count, product.ImageLink, product.ID).Scan(&product.UpdatedAt)
}

func (r *productRepository) ListProducts(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, price, details, count, image_link, created_at, updated_at
		FROM products
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.DB.QueryContext(dbCtx, query, limit, skip)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Details, &product.Count, &product.ImageLink, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete the product: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
