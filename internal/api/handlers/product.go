package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/mhartig/microshop/internal/api/middleware"
	appErrors "github.com/mhartig/microshop/internal/errors"
	"github.com/mhartig/microshop/internal/models"
	service "github.com/mhartig/microshop/internal/services"
	"github.com/mhartig/microshop/internal/utils"
	"github.com/mhartig/microshop/internal/utils/response"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: utils.NewValidator()}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateProductRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		product, err := h.productService.CreateProduct(r.Context(), &req)

		if err != nil {
			logger.Error("Error during product creation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusCreated, product)

	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		product, err := h.productService.GetProductByID(r.Context(), id)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)

	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		var req models.UpdateProductRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			writeValidationError(w, err)
			return
		}

		logger := middleware.LoggerFromContext(r.Context())

		product, err := h.productService.UpdateProduct(r.Context(), id, &req)

		if err != nil {
			logger.Error("Error during product updation", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully", slog.Int64("productId", product.ID))
		response.Success(w, http.StatusOK, product)

	}
}

// for eg: GET /products/?skip=0&limit=10
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		products, err := h.productService.ListProducts(r.Context(), skip, limit)

		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch products", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if products == nil {
			products = []*models.Product{}
		}

		response.Success(w, http.StatusOK, products)

	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := pathID(r, "id")
		if err != nil {
			response.Error(w, appErrors.BadRequestError("Invalid product id"))
			return
		}

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		middleware.LoggerFromContext(r.Context()).Info("Product deleted successfully", slog.Int64("productId", id))
		w.WriteHeader(http.StatusNoContent)

	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}

func writeValidationError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		response.ValidationError(w, validationErrs)
		return
	}

	response.Error(w, appErrors.ValidationError(err.Error()))
}
