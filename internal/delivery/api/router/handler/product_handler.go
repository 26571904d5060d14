package handler

import (
	"net/http"

	"cookbook/internal/delivery/api/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductHandler serves /api/products.
type ProductHandler struct {
	products usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(products usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(products, toProductResponse))
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	product, err := h.products.Create(c.Request().Context(), usecase.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Category:      req.Category,
		StockQuantity: *req.StockQuantity,
		Supplier:      req.Supplier,
		SKU:           req.SKU,
		Tags:          req.Tags,
		ReleaseDate:   parseReleaseDate(req.ReleaseDate),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req productUpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	product, err := h.products.Update(c.Request().Context(), c.Param("id"), usecase.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		Supplier:      req.Supplier,
		SKU:           req.SKU,
		Tags:          req.Tags,
		ReleaseDate:   parseReleaseDate(req.ReleaseDate),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Product deleted successfully")
}
