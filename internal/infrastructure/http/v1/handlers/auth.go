package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nicole276/Api-Stockbar/internal/domain/auth"
	"github.com/nicole276/Api-Stockbar/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login, account, and password reset endpoints.
type AuthHandler struct {
	svc *auth.Service
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateUser registers a new account.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), &auth.User{
		FullName: req.FullName,
		Email:    req.Email,
		RoleID:   req.RoleID,
	}, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListUsers returns all users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one user.
func (h *AuthHandler) GetUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		fail(c, err)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateRole registers a new role.
func (h *AuthHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	role, err := h.svc.CreateRole(c.Request.Context(), &auth.Role{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

// ListRoles returns all roles.
func (h *AuthHandler) ListRoles(c *gin.Context) {
	roles, err := h.svc.ListRoles(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// RequestPasswordReset issues a reset code. The response is identical
// for known and unknown emails.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	code, err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	// Delivery is out of scope; the code goes back to the caller.
	resp := gin.H{"status": "ok"}
	if code != "" {
		resp["code"] = code
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPasswordReset consumes a code and sets a new password.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.PasswordResetConfirm
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	if err := h.svc.ConfirmPasswordReset(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Ok)
}
