package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"token": result.Token, "user": result.User})
}

// POST /api/login
// body: { "email": "...", "password": "..." }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"token": result.Token, "user": result.User})
}
