package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mhartig/microshop/internal/api/middleware"
	appErrors "github.com/mhartig/microshop/internal/errors"
	"github.com/mhartig/microshop/internal/models"
	service "github.com/mhartig/microshop/internal/services"
	"github.com/mhartig/microshop/internal/utils"
	"github.com/mhartig/microshop/internal/utils/response"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: utils.NewValidator()}
}

func (h *CartHandler) CreateCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateCartRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		cart, err := h.cartService.CreateCart(r.Context(), &req)

		if err != nil {
			logger.Error("Error during cart creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Cart created successfully", slog.Int64("cartId", cart.ID), slog.Int64("userId", cart.UserID))
		response.Success(w, http.StatusCreated, cart)

	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := pathID(r, "user_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid user id"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), userID)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)

	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := pathID(r, "user_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid user id"))
			return
		}

		var req models.AddItemRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		item, err := h.cartService.AddItem(r.Context(), userID, &req)

		if err != nil {
			logger.Error("Error while adding item to cart", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart",
			slog.Int64("userId", userID),
			slog.Int64("productId", item.ProductID),
			slog.Int("quantity", item.Quantity),
		)
		response.Success(w, http.StatusCreated, item)

	}
}

// UpdateQuantity overwrites an item's quantity; zero or a negative value
// removes the item and answers 204.
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := pathID(r, "user_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid user id"))
			return
		}

		productID, err := pathID(r, "product_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		var req models.UpdateQuantityRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)
			return
		}

		item, removed, err := h.cartService.UpdateItemQuantity(r.Context(), userID, productID, *req.Quantity)

		if err != nil {
			response.Error(w, err)
			return
		}

		if removed {
			middleware.LoggerFromContext(r.Context()).Info("Item removed via quantity update", slog.Int64("userId", userID), slog.Int64("productId", productID))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		response.Success(w, http.StatusOK, item)

	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := pathID(r, "user_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid user id"))
			return
		}

		productID, err := pathID(r, "product_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		if err := h.cartService.RemoveItem(r.Context(), userID, productID); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Item removed from cart", slog.Int64("userId", userID), slog.Int64("productId", productID))
		w.WriteHeader(http.StatusNoContent)

	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		userID, err := pathID(r, "user_id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid user id"))
			return
		}

		if err := h.cartService.ClearCart(r.Context(), userID); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Cart cleared", slog.Int64("userId", userID))
		w.WriteHeader(http.StatusNoContent)

	}
}
