package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GuiAmaralD/pet-adoption-system/internal/application"
	"github.com/GuiAmaralD/pet-adoption-system/internal/response"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	service *application.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AccountService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Signup)
		authGroup.POST("/login", h.Login)
	}
}

// Signup handles POST /auth/register.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req application.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
