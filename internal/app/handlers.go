package app

import (
	httpx "github.com/yungbote/levelpath-backend/internal/http"
	httpH "github.com/yungbote/levelpath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/levelpath-backend/internal/http/middleware"
	"github.com/yungbote/levelpath-backend/internal/pkg/logger"
	"github.com/yungbote/levelpath-backend/internal/realtime"
	"github.com/yungbote/levelpath-backend/internal/services"
)

type Handlers struct {
	Health      *httpH.HealthHandler
	Auth        *httpH.AuthHandler
	User        *httpH.UserHandler
	Mission     *httpH.MissionHandler
	Quiz        *httpH.QuizHandler
	Module      *httpH.ModuleHandler
	Leaderboard *httpH.LeaderboardHandler
	Realtime    *httpH.RealtimeHandler
}

func wireHandlers(svc services.Set, hub *realtime.SSEHub) Handlers {
	return Handlers{
		Health:      httpH.NewHealthHandler(),
		Auth:        httpH.NewAuthHandler(svc.Auth),
		User:        httpH.NewUserHandler(svc.User),
		Mission:     httpH.NewMissionHandler(svc.Mission),
		Quiz:        httpH.NewQuizHandler(svc.Quiz),
		Module:      httpH.NewModuleHandler(svc.Module),
		Leaderboard: httpH.NewLeaderboardHandler(svc.Leaderboard),
		Realtime:    httpH.NewRealtimeHandler(hub),
	}
}

func wireMiddleware(log *logger.Logger, svc services.Set) *httpMW.AuthMiddleware {
	return httpMW.NewAuthMiddleware(log, svc.Auth)
}

func wireRouter(log *logger.Logger, h Handlers, auth *httpMW.AuthMiddleware) *httpx.Server {
	return httpx.NewServer(httpx.RouterConfig{
		Log:                log,
		AuthMiddleware:     auth,
		HealthHandler:      h.Health,
		AuthHandler:        h.Auth,
		UserHandler:        h.User,
		MissionHandler:     h.Mission,
		QuizHandler:        h.Quiz,
		ModuleHandler:      h.Module,
		LeaderboardHandler: h.Leaderboard,
		RealtimeHandler:    h.Realtime,
	})
}
