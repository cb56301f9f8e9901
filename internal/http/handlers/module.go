package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type ModuleHandler struct {
	moduleService services.ModuleService
}

func NewModuleHandler(moduleService services.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

// GET /api/modules?class_level=...
func (mh *ModuleHandler) List(c *gin.Context) {
	modules, err := mh.moduleService.List(c.Request.Context(), c.Query("class_level"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"modules": modules})
}

// GET /api/modules/:id
func (mh *ModuleHandler) Get(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
		return
	}
	module, err := mh.moduleService.Get(c.Request.Context(), moduleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"module": module})
}

// GET /api/modules/:id/quizzes
func (mh *ModuleHandler) GetQuizzes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
		return
	}
	quizzes, err := mh.moduleService.GetQuizzes(c.Request.Context(), userID, moduleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quizzes": quizzes})
}

// POST /api/users/log-video-watch
// body: { "moduleId": "..." }
func (mh *ModuleHandler) LogVideoWatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		ModuleID uuid.UUID `json:"moduleId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := mh.moduleService.LogVideoWatch(c.Request.Context(), userID, req.ModuleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":          result.Message,
		"xpEarned":         result.XPEarned,
		"user_status":      result.User,
		"mission_outcomes": result.MissionOutcomes,
	})
}
