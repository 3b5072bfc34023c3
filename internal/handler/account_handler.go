package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GuiAmaralD/pet-adoption-system/internal/application"
	"github.com/GuiAmaralD/pet-adoption-system/internal/auth"
	"github.com/GuiAmaralD/pet-adoption-system/internal/middleware"
	"github.com/GuiAmaralD/pet-adoption-system/internal/response"
)

// AccountHandler handles the authenticated account routes and the public
// owner profile lookup.
type AccountHandler struct {
	service *application.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(service *application.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterRoutes registers account and user routes.
func (h *AccountHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	account := r.Group("/account")
	account.Use(authMW)
	{
		account.GET("/me", h.Me)
		account.PUT("", h.Update)
		account.PUT("/password", h.ChangePassword)
	}

	r.GET("/user/:id", h.GetUser)
}

// Me handles GET /account/me.
func (h *AccountHandler) Me(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update handles PUT /account.
func (h *AccountHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ChangePassword handles PUT /account/password.
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), ownerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "password updated"})
}

// GetUser handles GET /user/:id.
func (h *AccountHandler) GetUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid user ID")
		return
	}

	result, err := h.service.GetOwner(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
