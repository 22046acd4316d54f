package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/catalogs/client"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// ClientHandler serves the client catalog.
type ClientHandler struct {
	svc *client.Service
}

// NewClientHandler creates a client handler.
func NewClientHandler(svc *client.Service) *ClientHandler {
	return &ClientHandler{svc: svc}
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req dto.PartyRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	cl, err := h.svc.Create(c.Request.Context(), &client.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *ClientHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	clients, err := h.svc.List(c.Request.Context(), activeOnly)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	cl, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) Update(c *gin.Context) {
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

	cl, err := h.svc.Update(c.Request.Context(), &client.Client{
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
	c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
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
