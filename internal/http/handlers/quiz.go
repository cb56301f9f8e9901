package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/levelpath-backend/internal/http/response"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// POST /api/quizzes/submit
// body: { "quizId": "...", "userAnswer": "..." }
func (qh *QuizHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		QuizID     uuid.UUID `json:"quizId" binding:"required"`
		UserAnswer string    `json:"userAnswer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := qh.quizService.Submit(c.Request.Context(), userID, req.QuizID, req.UserAnswer)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var correctAnswer *string
	if !result.IsCorrect {
		correctAnswer = &result.CorrectAnswer
	}
	response.RespondOK(c, gin.H{
		"message": result.Message,
		"quiz_status": gin.H{
			"isCorrect":     result.IsCorrect,
			"xpEarned":      result.XPEarned,
			"correctAnswer": correctAnswer,
		},
		"user_status":      result.User,
		"mission_outcomes": result.MissionOutcomes,
	})
}
