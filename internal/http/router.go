package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/levelpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/levelpath-backend/internal/http/middleware"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler      *httpH.HealthHandler
	AuthHandler        *httpH.AuthHandler
	UserHandler        *httpH.UserHandler
	MissionHandler     *httpH.MissionHandler
	QuizHandler        *httpH.QuizHandler
	ModuleHandler      *httpH.ModuleHandler
	LeaderboardHandler *httpH.LeaderboardHandler
	RealtimeHandler    *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.Check)
	}

	api := r.Group("/api")
	{
		// Public
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
		if cfg.LeaderboardHandler != nil {
			api.GET("/leaderboard", cfg.LeaderboardHandler.Top)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PUT("/me", cfg.UserHandler.UpdateMe)
			protected.GET("/me/badges", cfg.UserHandler.GetBadges)
			protected.GET("/dashboard", cfg.UserHandler.GetDashboard)
		}

		// Missions
		if cfg.MissionHandler != nil {
			protected.GET("/missions", cfg.MissionHandler.ListMissions)
			protected.GET("/missions/my-missions", cfg.MissionHandler.ListUserMissions)
			protected.GET("/missions/daily", cfg.MissionHandler.ListDailyMissions)
			protected.POST("/missions/progress", cfg.MissionHandler.RecordProgress)
			protected.POST("/missions/complete", cfg.MissionHandler.CompleteMission)
		}

		// Modules and video watches
		if cfg.ModuleHandler != nil {
			protected.GET("/modules", cfg.ModuleHandler.List)
			protected.GET("/modules/:id", cfg.ModuleHandler.Get)
			protected.GET("/modules/:id/quizzes", cfg.ModuleHandler.GetQuizzes)
			protected.POST("/users/log-video-watch", cfg.ModuleHandler.LogVideoWatch)
		}

		// Quizzes
		if cfg.QuizHandler != nil {
			protected.POST("/quizzes/submit", cfg.QuizHandler.Submit)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/events/stream", cfg.RealtimeHandler.Stream)
		}
	}

	return r
}
