package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/levelpath-backend/internal/domain"
	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type MissionHandler struct {
	missionService services.MissionService
}

func NewMissionHandler(missionService services.MissionService) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

func scopeFromRequest(daily bool) domain.MissionScope {
	if daily {
		return domain.DailyScope(time.Now().UTC())
	}
	return domain.OneOffScope()
}

// GET /api/missions
func (mh *MissionHandler) ListMissions(c *gin.Context) {
	missions, err := mh.missionService.ListMissions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"missions": missions})
}

// GET /api/missions/my-missions
func (mh *MissionHandler) ListUserMissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	rows, err := mh.missionService.ListUserMissions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"missions": rows})
}

// GET /api/missions/daily
func (mh *MissionHandler) ListDailyMissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	rows, err := mh.missionService.ListDailyMissions(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"missions": rows})
}

// POST /api/missions/progress
// body: { "missionId": "...", "amount": 1, "isDailyMission": false }
func (mh *MissionHandler) RecordProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		MissionID uuid.UUID `json:"missionId" binding:"required"`
		Amount    int       `json:"amount"`
		Daily     bool      `json:"isDailyMission"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	out, err := mh.missionService.RecordProgress(c.Request.Context(), userID, req.MissionID, scopeFromRequest(req.Daily), req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": out.Message, "mission_status": out, "user_status": out.User})
}

// POST /api/missions/complete
// body: { "missionId": "...", "isDailyMission": false }
func (mh *MissionHandler) CompleteMission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		MissionID uuid.UUID `json:"missionId" binding:"required"`
		Daily     bool      `json:"isDailyMission"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	out, err := mh.missionService.CompleteIfEligible(c.Request.Context(), userID, req.MissionID, scopeFromRequest(req.Daily))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": out.Message, "mission_status": out, "user_status": out.User})
}
