package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mhartig/microshop/internal/models"
	"github.com/mhartig/microshop/internal/utils"
)

type CartRepository interface {
	UpsertCart(ctx context.Context, userID int64, username string) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error)
	UpsertItem(ctx context.Context, item *models.CartItem) error
	SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*models.CartItem, error)
	DeleteItem(ctx context.Context, cartID, productID int64) error
	ListItems(ctx context.Context, cartID int64) ([]*models.CartItem, error)
	DeleteItems(ctx context.Context, cartID int64) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

// UpsertCart returns the existing cart for userID or creates one, in a single
// atomic statement. The stored username is refreshed on every call.
func (r *cartRepository) UpsertCart(ctx context.Context, userID int64, username string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (user_id, username)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username, updated_at = NOW()
		RETURNING id, user_id, username, created_at, updated_at
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID, username).Scan(&cart.ID, &cart.UserID, &cart.Username, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID int64) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, username, created_at, updated_at
		FROM carts
		WHERE user_id = $1
	`

	cart := &models.Cart{}

	err := r.DB.QueryRowContext(dbCtx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.Username, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return cart, nil
}

// UpsertItem inserts the item or, when one already exists for the same
// (cart_id, product_id), accumulates the quantity and refreshes the product
// snapshot. An empty image link leaves the stored one untouched. The item is
// overwritten with the resulting row.
func (r *cartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO cart_items (cart_id, product_id, product_name, product_price, image_link, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity,
			product_name = EXCLUDED.product_name,
			product_price = EXCLUDED.product_price,
			image_link = CASE WHEN EXCLUDED.image_link = '' THEN cart_items.image_link ELSE EXCLUDED.image_link END,
			updated_at = NOW()
		RETURNING id, cart_id, product_id, product_name, product_price, image_link, quantity, created_at, updated_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, item.CartID, item.ProductID, item.ProductName, item.ProductPrice, item.ImageLink, item.Quantity).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName, &item.ProductPrice, &item.ImageLink, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

func (r *cartRepository) SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE cart_items SET quantity = $3, updated_at = NOW()
		WHERE cart_id = $1 AND product_id = $2
		RETURNING id, cart_id, product_id, product_name, product_price, image_link, quantity, created_at, updated_at
	`

	item := &models.CartItem{}

	err := r.DB.QueryRowContext(dbCtx, query, cartID, productID, quantity).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName, &item.ProductPrice, &item.ImageLink, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, productID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
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

func (r *cartRepository) ListItems(ctx context.Context, cartID int64) ([]*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, cart_id, product_id, product_name, product_price, image_link, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id
	`

	rows, err := r.DB.QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var items []*models.CartItem

	for rows.Next() {
		item := &models.CartItem{}

		err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName, &item.ProductPrice, &item.ImageLink, &item.Quantity, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// DeleteItems empties the cart; the cart row itself survives.
func (r *cartRepository) DeleteItems(ctx context.Context, cartID int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart items: %w", err)
	}

	return nil
}
