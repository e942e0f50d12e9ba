package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mhartig/microshop/internal/config"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := sql.Open("postgres", cfg.Database.URL)

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{DB: db}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}

// EnsureCatalogSchema creates the product service table. Development-grade
// bootstrap; production deployments run migrations instead.
func (r *Repository) EnsureCatalogSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12, 2) NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			count INTEGER NOT NULL DEFAULT 0,
			image_link VARCHAR(1024) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	return nil
}

// EnsureCartSchema creates the cart service tables. The UNIQUE constraints
// back the one-cart-per-user and one-item-per-product invariants.
func (r *Repository) EnsureCartSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS carts (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE,
			username VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create carts table: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS cart_items (
			id BIGSERIAL PRIMARY KEY,
			cart_id BIGINT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			product_price NUMERIC(12, 2) NOT NULL,
			image_link VARCHAR(1024) NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (cart_id, product_id)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create cart_items table: %w", err)
	}

	return nil
}
