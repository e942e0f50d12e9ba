package service

import (
	"context"
	"database/sql"
	"errors"

	appErrors "github.com/mhartig/microshop/internal/errors"
	"github.com/mhartig/microshop/internal/models"
	repository "github.com/mhartig/microshop/internal/repositories"
	"github.com/shopspring/decimal"
)

type CartService interface {
	CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.CartRead, error)
	GetCart(ctx context.Context, userID int64) (*models.CartRead, error)
	AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartItemRead, error)
	UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int) (*models.CartItemRead, bool, error)
	RemoveItem(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
}

type cartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) CartService {
	return &cartService{repo: repo}
}

// CreateCart is the explicit POST /cart/ surface. Re-creating a cart for an
// existing user returns that user's cart with the username refreshed.
func (s *cartService) CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.CartRead, error) {

	cart, err := s.repo.UpsertCart(ctx, req.UserID, req.Username)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart items").WithError(err)
	}

	return buildCartRead(cart, items), nil
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.CartRead, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart items").WithError(err)
	}

	return buildCartRead(cart, items), nil
}

// AddItem resolves the user's cart (creating it on first use) and merges the
// item into it: an existing row for the same product accumulates the quantity
// and takes the fresh name/price snapshot, a missing row is inserted.
func (s *cartService) AddItem(ctx context.Context, userID int64, req *models.AddItemRequest) (*models.CartItemRead, error) {

	cart, err := s.repo.UpsertCart(ctx, userID, req.Username)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to resolve cart").WithError(err)
	}

	item := &models.CartItem{
		CartID:       cart.ID,
		ProductID:    req.ProductID,
		ProductName:  req.ProductName,
		ProductPrice: req.ProductPrice,
		ImageLink:    req.ImageLink,
		Quantity:     req.Quantity,
	}

	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	read := itemRead(item)

	return &read, nil
}

// UpdateItemQuantity overwrites the quantity of an existing item. A quantity
// of zero or less removes the item and reports removed=true; that is the
// designed removal path, not an error.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, productID int64, quantity int) (*models.CartItemRead, bool, error) {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return nil, false, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if quantity <= 0 {
		if err := s.deleteItem(ctx, cart.ID, productID); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	item, err := s.repo.SetItemQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.NotFoundError("Item not found in the cart").WithError(err)
		}
		return nil, false, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	read := itemRead(item)

	return &read, false, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID int64) error {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return s.deleteItem(ctx, cart.ID, productID)
}

// ClearCart deletes every item under the user's cart; the cart row survives.
func (s *cartService) ClearCart(ctx context.Context, userID int64) error {

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if err := s.repo.DeleteItems(ctx, cart.ID); err != nil {
		return appErrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) deleteItem(ctx context.Context, cartID, productID int64) error {
	err := s.repo.DeleteItem(ctx, cartID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFoundError("Item not found in the cart").WithError(err)
		}
		return appErrors.DatabaseError("Failed to remove cart item").WithError(err)
	}

	return nil
}

// itemRead maps a persisted item into its response shape with the derived
// total. The entity itself never carries the total.
func itemRead(item *models.CartItem) models.CartItemRead {
	return models.CartItemRead{
		ID:           item.ID,
		ProductID:    item.ProductID,
		ProductName:  item.ProductName,
		ProductPrice: item.ProductPrice,
		ImageLink:    item.ImageLink,
		Quantity:     item.Quantity,
		TotalAmount:  item.ProductPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// buildCartRead derives all totals fresh; they are recomputed on every read
// and never stored, so they cannot go stale.
func buildCartRead(cart *models.Cart, items []*models.CartItem) *models.CartRead {
	read := &models.CartRead{
		ID:          cart.ID,
		UserID:      cart.UserID,
		Username:    cart.Username,
		Items:       make([]models.CartItemRead, 0, len(items)),
		TotalAmount: decimal.Zero,
	}

	for _, item := range items {
		ir := itemRead(item)
		read.Items = append(read.Items, ir)
		read.TotalAmount = read.TotalAmount.Add(ir.TotalAmount)
	}

	return read
}
