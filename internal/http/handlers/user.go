package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/pkg/ctxutil"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// currentUserID reads the authenticated user from the request context.
// RequireAuth guarantees it is set on protected routes.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return rd.UserID, true
}

// GET /api/me
func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := uh.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// PUT /api/me
func (uh *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req services.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// GET /api/dashboard
func (uh *UserHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	dash, err := uh.userService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, dash)
}

// GET /api/me/badges
func (uh *UserHandler) GetBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	badges, err := uh.userService.Badges(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"badges": badges})
}
