package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/supplier"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// SupplierHandler serves the supplier catalog.
type SupplierHandler struct {
	svc *supplier.Service
}

// NewSupplierHandler creates a supplier handler.
func NewSupplierHandler(svc *supplier.Service) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.PartyRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	sup, err := h.svc.Create(c.Request.Context(), &supplier.Supplier{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sup)
}

func (h *SupplierHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	suppliers, err := h.svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	sup, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.PartyRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	sup, err := h.svc.Update(c.Request.Context(), &supplier.Supplier{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sup)
}

func (h *SupplierHandler) Deactivate(c *gin.Context) {
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
