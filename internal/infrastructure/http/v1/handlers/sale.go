package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/documents/sale"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// SaleHandler serves sale documents and their state machine.
type SaleHandler struct {
	svc *sale.Service
}

// NewSaleHandler creates a sale handler.
func NewSaleHandler(svc *sale.Service) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Create posts a sale.
func (h *SaleHandler) Create(c *gin.Context) {
	var req dto.SaleRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	doc := &sale.Sale{
		ClientID: req.ClientID,
		State:    sale.StatePending,
	}
	if req.Date != nil {
		doc.Date = *req.Date
	}
	if req.State != nil {
		doc.State = sale.State(*req.State)
	}
	for _, line := range req.Lines {
		doc.Lines = append(doc.Lines, sale.Line{
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

// List returns sales matching the query.
func (h *SaleHandler) List(c *gin.Context) {
	var query dto.SaleListQuery
	if err := bindQuery(c, &query); err != nil {
		fail(c, err)
		return
	}

	filter := sale.Filter{
		ClientID: query.ClientID,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}
	if query.State != nil {
		state := sale.State(*query.State)
		filter.State = &state
	}

	sales, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

// Get returns one sale with its lines.
func (h *SaleHandler) Get(c *gin.Context) {
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

// GetLines returns just the lines of a sale.
func (h *SaleHandler) GetLines(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	lines, err := h.svc.GetLines(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// ChangeState moves a sale to a new state.
func (h *SaleHandler) ChangeState(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.ChangeStateRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	change, err := h.svc.ChangeState(c.Request.Context(), id, sale.State(*req.State))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, change)
}

// Delete removes a sale, returning held stock once.
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Ok)
}
