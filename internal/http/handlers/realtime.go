package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/realtime"
)

type RealtimeHandler struct {
	hub *realtime.SSEHub
}

func NewRealtimeHandler(hub *realtime.SSEHub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// GET /api/events/stream
// Streams the caller's progression events over SSE until disconnect.
func (rh *RealtimeHandler) Stream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	client := rh.hub.NewSSEClient(userID)
	rh.hub.AddChannel(client, realtime.UserChannel(userID))
	defer rh.hub.CloseClient(client)

	rh.hub.ServeHTTP(c.Writer, c.Request, client)
}
