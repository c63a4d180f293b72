package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/handler/dto"
	"github.com/yourusername/survey-api/internal/service"
)

// AuthHandler issues access tokens
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates the handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, "AuthHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": res.AccessToken,
		"expiresAt":   res.ExpiresAt,
		"tokenType":   "Bearer",
		"person":      dto.NewPersonResponse(res.Person),
	})
}
