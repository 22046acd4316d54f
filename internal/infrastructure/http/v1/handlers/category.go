package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/category"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// CategoryHandler serves the category catalog.
type CategoryHandler struct {
	svc *category.Service
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(svc *category.Service) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	cat, err := h.svc.Create(c.Request.Context(), &category.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	cat, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	var req dto.CategoryRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	cat, err := h.svc.Update(c.Request.Context(), &category.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
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
