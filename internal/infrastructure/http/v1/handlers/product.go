package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/product"
	"github.com/nicole276/Api-Stockbar/internal/domain/ledger"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the product catalog and stock adjustments.
type ProductHandler struct {
	svc    *product.Service
	stocks *ledger.Service
}

// NewProductHandler creates a product handler.
func NewProductHandler(svc *product.Service, stocks *ledger.Service) *ProductHandler {
	return &ProductHandler{svc: svc, stocks: stocks}
}

// Create adds a product.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), &product.Product{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Stock:         req.Stock,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// List returns products matching the query.
func (h *ProductHandler) List(c *gin.Context) {
	var query dto.ProductListQuery
	if err := bindQuery(c, &query); err != nil {
		fail(c, err)
		return
	}

	products, err := h.svc.List(c.Request.Context(), product.Filter{
		CategoryID: query.CategoryID,
		Active:     query.Active,
		Search:     query.Search,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Get returns one product.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	p, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update changes product reference fields.
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.ProductRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), &product.Product{
		ID:            id,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Deactivate soft-deletes a product.
func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Ok)
}

// AdjustStock performs a manual stock correction.
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.AdjustStockRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	level, err := h.stocks.Adjust(c.Request.Context(), id, req.Quantity, ledger.Direction(req.Direction))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, level)
}
