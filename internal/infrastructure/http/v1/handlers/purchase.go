package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/documents/purchase"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler serves purchase documents.
type PurchaseHandler struct {
	svc *purchase.Service
}

// NewPurchaseHandler creates a purchase handler.
func NewPurchaseHandler(svc *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// Create posts a purchase.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	doc := &purchase.Purchase{
		SupplierID:    req.SupplierID,
		InvoiceNumber: req.InvoiceNumber,
	}
	if req.Date != nil {
		doc.Date = *req.Date
	}
	for _, line := range req.Lines {
		doc.Lines = append(doc.Lines, purchase.Line{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	created, err := h.svc.Create(c.Request.Context(), doc)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns purchases matching the query.
func (h *PurchaseHandler) List(c *gin.Context) {
	var query dto.PurchaseListQuery
	if err := bindQuery(c, &query); err != nil {
		fail(c, err)
		return
	}

	purchases, err := h.svc.List(c.Request.Context(), purchase.Filter{
		SupplierID: query.SupplierID,
		Limit:      query.Limit,
		Offset:     query.Offset,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// Get returns one purchase with its lines.
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	doc, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
