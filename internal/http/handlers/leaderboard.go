package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GET /api/leaderboard
func (lh *LeaderboardHandler) Top(c *gin.Context) {
	entries, err := lh.leaderboardService.Top(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"leaderboard": entries})
}
